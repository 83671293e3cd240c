package export

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NotionPages is the slice of the Notion API the publisher needs.
type NotionPages interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// NotionPublisher pushes a finished itinerary into a Notion database, one
// page per trip with a stop list in the body. Calls are throttled to stay
// under Notion's 3 req/s integration limit.
type NotionPublisher struct {
	pages   NotionPages
	dbID    string
	limiter *rate.Limiter
}

// NewNotionPublisher creates a publisher for the given integration token
// and target database.
func NewNotionPublisher(token, databaseID string) *NotionPublisher {
	client := notionapi.NewClient(notionapi.Token(token))
	return &NotionPublisher{
		pages:   client.Page,
		dbID:    databaseID,
		limiter: rate.NewLimiter(3, 1),
	}
}

// Publish creates the itinerary page and returns its URL.
func (p *NotionPublisher) Publish(ctx context.Context, it *Itinerary) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "notion: rate limit")
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(p.dbID),
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: richText(fmt.Sprintf("%s · %s → %s", it.Destination, it.StartDate, it.EndDate)),
			},
		},
		Children: p.buildBlocks(it),
	}

	page, err := p.pages.Create(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "notion: create itinerary page")
	}

	zap.L().Info("notion: itinerary published",
		zap.String("session_id", it.SessionID),
		zap.String("page_url", page.URL),
	)
	return page.URL, nil
}

func (p *NotionPublisher) buildBlocks(it *Itinerary) []notionapi.Block {
	var blocks []notionapi.Block

	if it.Profile != "" {
		blocks = append(blocks, &notionapi.QuoteBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeQuote),
			Quote:      notionapi.Quote{RichText: richText(it.Profile)},
		})
	}

	for dayIdx, day := range it.Days {
		blocks = append(blocks, &notionapi.Heading2Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: richText(fmt.Sprintf("Day %d", dayIdx+1))},
		})
		for _, poi := range day {
			line := poi.Name
			if poi.Address != "" {
				line += " · " + poi.Address
			}
			blocks = append(blocks, &notionapi.NumberedListItemBlock{
				BasicBlock:       basicBlock(notionapi.BlockTypeNumberedListItem),
				NumberedListItem: notionapi.ListItem{RichText: richText(line)},
			})
		}
	}

	return blocks
}

func basicBlock(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}
