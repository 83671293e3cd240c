package export

import (
	"context"
	"net"
	"os"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPPublisher uploads exported artifacts to an FTP drop directory, for
// hand-off to systems that only speak FTP.
type FTPPublisher struct {
	host     string
	user     string
	password string
	dir      string
	timeout  time.Duration
}

// NewFTPPublisher creates a publisher. host may omit the port; 21 is
// assumed. dir is the remote directory artifacts land in.
func NewFTPPublisher(host, user, password, dir string) *FTPPublisher {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	return &FTPPublisher{
		host:     host,
		user:     user,
		password: password,
		dir:      dir,
		timeout:  30 * time.Second,
	}
}

// Publish uploads each local file to the remote directory under its base
// name. Files are uploaded over a single connection.
func (p *FTPPublisher) Publish(ctx context.Context, localPaths ...string) error {
	conn, err := ftp.Dial(p.host,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(p.timeout),
	)
	if err != nil {
		return eris.Wrap(err, "ftp: dial")
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(p.user, p.password); err != nil {
		return eris.Wrap(err, "ftp: login")
	}

	for _, local := range localPaths {
		f, err := os.Open(local)
		if err != nil {
			return eris.Wrap(err, "ftp: open artifact")
		}

		remote := path.Join(p.dir, path.Base(local))
		err = conn.Stor(remote, f)
		_ = f.Close()
		if err != nil {
			return eris.Wrapf(err, "ftp: store %s", remote)
		}

		zap.L().Info("ftp: artifact published",
			zap.String("local", local),
			zap.String("remote", remote),
		)
	}

	return nil
}
