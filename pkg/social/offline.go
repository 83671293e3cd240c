package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// template is one offline POI entry: a name pattern, a content snippet, and
// a seed persona-alignment score.
type template struct {
	name    string
	content string
	score   float64
}

var personaTemplates = map[model.Persona][]template{
	model.PersonaPhotography: {
		{"%s Golden Hour Viewpoint", "Famous for stunning sunset photography. Best light at 6-7pm.", 9.2},
		{"%s Street Art District", "Colourful murals and instagrammable walls around every corner.", 8.8},
		{"%s Misty Mountain Overlook", "Cloud-level panorama perfect for landscape shots.", 9.5},
		{"%s Old Architecture Quarter", "Preserved historic facades with excellent natural lighting.", 8.5},
		{"%s Reflection Pool Garden", "Symmetrical reflections ideal for mirror photography.", 8.0},
		{"%s Abandoned Factory Loft", "Urban-decay aesthetic popular with portrait photographers.", 7.8},
		{"%s Lantern Festival Square", "Glowing lanterns make for magical long-exposure shots.", 9.0},
		{"%s Cliffside Café", "Glass-floor café perched on a cliff with unobstructed views.", 8.6},
	},
	model.PersonaChilling: {
		{"%s Riverside Café Row", "Laid-back waterside cafés with hammocks and slow WiFi.", 9.0},
		{"%s Secret Garden Park", "Hidden green space locals use to read and nap.", 8.7},
		{"%s Rooftop Lounge Bar", "Sunset cocktails with zero dress code.", 8.3},
		{"%s Specialty Coffee Alley", "Tiny independent roasters tucked in a cobblestone lane.", 9.1},
		{"%s Floating Library Barge", "Books, tea, and gentle river waves.", 8.0},
		{"%s Night Market Food Court", "Low-key evening street food with plastic stools.", 8.5},
		{"%s Lakeside Hammock Spot", "Free hammock zone, no booking needed.", 7.9},
		{"%s Cat Café & Bookstore", "Resident cats, vintage paperbacks, and homemade cake.", 8.8},
	},
	model.PersonaFoodie: {
		{"%s Morning Wet Market", "Where locals shop at 6am, freshest produce in the city.", 9.3},
		{"%s Night Street Food Strip", "Sizzling skewers and mystery noodles under neon signs.", 9.5},
		{"%s Heritage Dumpling Shop", "Family recipe unchanged for 80 years. Cash only.", 9.0},
		{"%s Spice Bazaar", "Sensory overload of local spices, dried fruits and nuts.", 8.6},
		{"%s Rooftop Farm-to-Table", "Chef grows 40% of ingredients on the roof.", 8.4},
		{"%s Craft Brewery & Taproom", "Regional ales brewed on-site, free tasting flights on Fridays.", 8.0},
		{"%s Michelin Bib Gourmand Stall", "Cheap eats that made the Michelin list, expect a 2-hour queue.", 9.2},
		{"%s Dessert Alley", "Eight dessert shops in a row, try the signature soft-serve.", 8.3},
	},
	model.PersonaExercise: {
		{"%s Coastal Hiking Trail", "8km cliffside trail with ocean views, moderate difficulty.", 9.4},
		{"%s Sunrise Yoga Deck", "Outdoor platform overlooking the valley, free drop-in class.", 8.5},
		{"%s Kayak Launch Point", "Rentals available, guided tours through mangrove channels.", 9.0},
		{"%s Volcano Summit Trek", "Strenuous 4-hour ascent rewarded with 360° crater views.", 9.6},
		{"%s Urban Cycling Circuit", "16km signed cycle loop through parks and riverside paths.", 8.2},
		{"%s Rock Climbing Crag", "Natural limestone face with routes for all skill levels.", 8.8},
		{"%s Open-Water Swimming Cove", "Calm sheltered bay, regular early-morning swim club.", 8.0},
		{"%s Forest Canopy Walkway", "Suspension bridges 40m above the jungle floor.", 9.1},
	},
}

// querySuffixes are the persona/travel fragments appended by query building;
// stripping them recovers the bare destination from an offline keyword.
var querySuffixes = []string{
	"旅游攻略", "攻略", "旅游", "景点推荐", "景点", "打卡",
	"美食推荐", "美食", "咖啡厅", "咖啡", "拍照打卡", "拍照", "摄影景点", "摄影",
	"徒步", "户外运动", "骑行", "休闲", "氛围感", "ins风", "必吃", "特色小吃",
}

// OfflineClient serves deterministic persona-template data. It backs local
// development and tests, and acts as the degradation target when the live
// gateway is unreachable.
type OfflineClient struct{}

// NewOfflineClient creates a deterministic offline content client.
func NewOfflineClient() *OfflineClient {
	return &OfflineClient{}
}

// SearchPOIs implements Client with template data keyed off the persona
// detected in the keyword.
func (c *OfflineClient) SearchPOIs(_ context.Context, keyword string, max int) ([]model.Candidate, error) {
	persona := detectPersona(keyword)
	dest := stripQuerySuffixes(keyword)

	templates := personaTemplates[persona]
	if max < len(templates) {
		templates = templates[:max]
	}

	pois := make([]model.Candidate, 0, len(templates))
	for i, tpl := range templates {
		score := tpl.score
		likes := 200 - i*15
		if likes < 10 {
			likes = 10
		}
		pois = append(pois, model.Candidate{
			Name:       fmt.Sprintf(tpl.name, dest),
			Address:    dest,
			Category:   string(persona),
			RawContent: tpl.content,
			Likes:      likes,
			SeedScore:  &score,
		})
	}
	return pois, nil
}

// RecentPosts implements Client with upbeat deterministic posts, so offline
// verification sees evidence of an open, active place.
func (c *OfflineClient) RecentPosts(_ context.Context, poiName string, n int) ([]Post, error) {
	contents := []string{
		"Just visited " + poiName + " — still open and absolutely worth it! No renovation signs.",
		poiName + " was great this weekend. Crowds are manageable on weekday mornings.",
		"Went to " + poiName + " yesterday. Highly recommend, place is thriving.",
	}
	posts := make([]Post, 0, n)
	for i := 0; i < n && i < len(contents); i++ {
		posts = append(posts, Post{
			Title:   "My visit to " + poiName,
			Content: contents[i],
			Likes:   50 + i*12,
		})
	}
	return posts, nil
}

func detectPersona(keyword string) model.Persona {
	switch {
	case containsAny(keyword, "拍照", "摄影", "ins风", "photography"):
		return model.PersonaPhotography
	case containsAny(keyword, "美食", "必吃", "小吃", "foodie"):
		return model.PersonaFoodie
	case containsAny(keyword, "徒步", "户外", "骑行", "exercise"):
		return model.PersonaExercise
	default:
		return model.PersonaChilling
	}
}

func stripQuerySuffixes(keyword string) string {
	dest := keyword
	for _, suffix := range querySuffixes {
		if idx := strings.Index(dest, suffix); idx != -1 {
			dest = dest[:idx]
		}
	}
	return strings.TrimSpace(dest)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
