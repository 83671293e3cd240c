package geocode

import (
	"context"
	"hash/fnv"
	"strings"
)

// jitterOffset spreads repeated city-table hits around the city centre so
// the route optimiser does not see every stop at the exact same point.
const jitterOffset = 0.015

// Gazetteer is an offline geocoder backed by a city-centre table. Matching
// is by case-insensitive substring, so "Shibuya, Tokyo" resolves to the
// Tokyo centre. The jitter is derived from the address string, making
// results stable across runs.
type Gazetteer struct {
	entries []gazetteerEntry
}

type gazetteerEntry struct {
	name string
	pt   Point
}

// DefaultGazetteer returns a gazetteer covering major destinations on every
// continent, with CJK aliases for East Asian cities.
func DefaultGazetteer() *Gazetteer {
	g := &Gazetteer{}
	for _, e := range builtinCities {
		g.Add(e.name, e.pt.Lat, e.pt.Lng)
	}
	return g
}

// Add registers a place name and its centre. Longer names are matched
// first, so "new york" wins over a hypothetical "york" entry.
func (g *Gazetteer) Add(name string, lat, lng float64) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	e := gazetteerEntry{name: name, pt: Point{Lat: lat, Lng: lng}}
	for i := range g.entries {
		if len(g.entries[i].name) < len(name) {
			g.entries = append(g.entries[:i], append([]gazetteerEntry{e}, g.entries[i:]...)...)
			return
		}
	}
	g.entries = append(g.entries, e)
}

// Len reports the number of registered places.
func (g *Gazetteer) Len() int { return len(g.entries) }

func (g *Gazetteer) Name() string { return "gazetteer" }

// Geocode returns the jittered centre of the first city whose name appears
// in the address, or nil when no city matches. Returning nil rather than a
// guess keeps unknown POIs out of the wrong cluster.
func (g *Gazetteer) Geocode(_ context.Context, address string) (*Point, error) {
	lower := strings.ToLower(address)
	for _, e := range g.entries {
		if strings.Contains(lower, e.name) {
			jlat, jlng := jitter(address)
			return &Point{Lat: e.pt.Lat + jlat, Lng: e.pt.Lng + jlng}, nil
		}
	}
	return nil, nil
}

// jitter maps an address to a stable offset in [-jitterOffset, jitterOffset]
// on each axis.
func jitter(address string) (float64, float64) {
	h := fnv.New64a()
	h.Write([]byte(address))
	sum := h.Sum64()
	lat := (float64(sum&0xFFFF)/0xFFFF*2 - 1) * jitterOffset
	lng := (float64((sum>>16)&0xFFFF)/0xFFFF*2 - 1) * jitterOffset
	return lat, lng
}

var builtinCities = []gazetteerEntry{
	// Asia
	{"tokyo", Point{35.6762, 139.6503}},
	{"東京", Point{35.6762, 139.6503}},
	{"osaka", Point{34.6937, 135.5023}},
	{"大阪", Point{34.6937, 135.5023}},
	{"kyoto", Point{35.0116, 135.7681}},
	{"京都", Point{35.0116, 135.7681}},
	{"beijing", Point{39.9042, 116.4074}},
	{"北京", Point{39.9042, 116.4074}},
	{"shanghai", Point{31.2304, 121.4737}},
	{"上海", Point{31.2304, 121.4737}},
	{"chengdu", Point{30.5728, 104.0668}},
	{"成都", Point{30.5728, 104.0668}},
	{"chongqing", Point{29.5630, 106.5516}},
	{"重庆", Point{29.5630, 106.5516}},
	{"guangzhou", Point{23.1291, 113.2644}},
	{"广州", Point{23.1291, 113.2644}},
	{"shenzhen", Point{22.5431, 114.0579}},
	{"深圳", Point{22.5431, 114.0579}},
	{"hangzhou", Point{30.2741, 120.1551}},
	{"杭州", Point{30.2741, 120.1551}},
	{"xian", Point{34.3416, 108.9398}},
	{"西安", Point{34.3416, 108.9398}},
	{"singapore", Point{1.3521, 103.8198}},
	{"bangkok", Point{13.7563, 100.5018}},
	{"seoul", Point{37.5665, 126.9780}},
	{"서울", Point{37.5665, 126.9780}},
	{"hong kong", Point{22.3193, 114.1694}},
	{"香港", Point{22.3193, 114.1694}},
	{"taipei", Point{25.0330, 121.5654}},
	{"台北", Point{25.0330, 121.5654}},
	{"bali", Point{-8.3405, 115.0920}},
	{"kuala lumpur", Point{3.1390, 101.6869}},
	// Europe
	{"london", Point{51.5074, -0.1278}},
	{"paris", Point{48.8566, 2.3522}},
	{"rome", Point{41.9028, 12.4964}},
	{"barcelona", Point{41.3851, 2.1734}},
	{"amsterdam", Point{52.3676, 4.9041}},
	{"berlin", Point{52.5200, 13.4050}},
	{"vienna", Point{48.2082, 16.3738}},
	{"prague", Point{50.0755, 14.4378}},
	{"lisbon", Point{38.7223, -9.1393}},
	{"istanbul", Point{41.0082, 28.9784}},
	// Americas
	{"new york", Point{40.7128, -74.0060}},
	{"los angeles", Point{34.0522, -118.2437}},
	{"chicago", Point{41.8781, -87.6298}},
	{"miami", Point{25.7617, -80.1918}},
	{"san francisco", Point{37.7749, -122.4194}},
	{"las vegas", Point{36.1699, -115.1398}},
	{"toronto", Point{43.6532, -79.3832}},
	{"vancouver", Point{49.2827, -123.1207}},
	{"mexico city", Point{19.4326, -99.1332}},
	{"rio de janeiro", Point{-22.9068, -43.1729}},
	// US states and regions
	{"alaska", Point{64.2008, -153.4937}},
	{"hawaii", Point{20.7967, -156.3319}},
	{"florida", Point{27.9944, -81.7603}},
	{"california", Point{36.7783, -119.4179}},
	{"texas", Point{31.9686, -99.9018}},
	{"colorado", Point{39.5501, -105.7821}},
	// Oceania
	{"sydney", Point{-33.8688, 151.2093}},
	{"melbourne", Point{-37.8136, 144.9631}},
	{"auckland", Point{-36.8485, 174.7633}},
	// Middle East and Africa
	{"dubai", Point{25.2048, 55.2708}},
	{"cairo", Point{30.0444, 31.2357}},
	{"cape town", Point{-33.9249, 18.4241}},
}
