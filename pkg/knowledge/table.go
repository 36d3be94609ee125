package knowledge

import (
	"strings"
)

// NoMatchApology is the fixed body returned when neither a card key nor
// a free-text pattern matches. It is a valid terminal answer, not an error.
const NoMatchApology = "Sorry, we could not find an answer to your query."

// Card shortcut keys, each bound to one canned answer. These come from
// fixed UI affordances and bypass free-text classification.
const (
	CardBestCourses   = "best_courses"
	CardBusinessIdeas = "business_ideas"
	CardTravelIdeas   = "travel_ideas"
	CardDPExample     = "dp_example"
)

const bestCoursesBody = "- CSE: Computer Science and Engineering\n- IT: Information Technology\n- ECE: Electronics and Communication Engineering\n- EEE: Electrical and Electronics Engineering\n- ME: Mechanical Engineering\n- CE: Civil Engineering\n- AE: Aerospace Engineering\n- CH: Chemical Engineering\n- BT: Biotechnology\n- IE: Industrial Engineering\n- ICE: Instrumentation and Control Engineering\n- PE: Petroleum Engineering\n- MT: Metallurgical Engineering\n- Mining: Mining Engineering\n- Auto: Automobile Engineering\n- EnvE: Environmental Engineering\n- Marine: Marine Engineering"

const businessIdeasBody = "🚛 1. Uber for Goods (Your Idea) – Local Truck Bidding Platform\nWhat: Local businesses post goods to deliver → nearby trucks bid in real time\n\nHow to start: Firebase backend + React Native app\n\nMoney: Commission (₹50–₹500 per delivery), paid plans for truckers\n\nWhy it works: No organized competition in tier-2/3 cities\n\n🏫 2. Local Tutor Booking App\nWhat: Tutors in your area list batches → students book seats/pay via app\n\nYou already teach, so you're the first user!\n\nMVP: Google Forms + WhatsApp → then React Native app\n\nRevenue: Subscription fee from teachers or ₹10/booking charge\n\n📦 3. Warehouse/Godown on Rent App\nWhat: List and book empty storage areas for local traders\n\nYour father's paper business can be an anchor partner\n\nPlatform: Simple map-based app (React + Google Maps API)\n\nEarn: Rent % + premium listing\n\n🧠 4. AI Bot Service for Small Shops\nWhat: You build & sell custom GPT-based chatbots for coaching, retailers, etc.\n\nTool: Botpress + OpenAI + Firebase\n\nClients: Your own tuition, local stores\n\nEarn: ₹299–₹999/month per bot\n\n🧃 5. Smart Food Trolley (QR-based)\nWhat: Local hostel/office tiffin or juice with QR scan → order → pay\n\nUse case: Campus, coaching centres\n\nTrack: Orders + payments via Google Sheets initially\n\nExpand: Add fridge sensors later (IoT)\n"

const travelIdeasBody = "🍃 1. Munnar, Kerala\nWhy: Misty tea gardens, waterfalls, and lush hills\n\nHighlights: Attukad Waterfalls, Eravikulam National Park\n\nMonsoon Vibe: Green carpets everywhere + fog = magical!\n\n🏞️ 2. Coorg (Kodagu), Karnataka\nWhy: Coffee estates + monsoon forests\n\nHighlights: Abbey Falls, Raja's Seat, Dubare Elephant Camp\n\nPerfect for: Peaceful solo trips or couples\n\n⛰️ 3. Lonavala-Khandala, Maharashtra\nWhy: Mumbai–Pune weekend favorite, filled with misty forts & waterfalls\n\nHighlights: Tiger Point, Bhushi Dam, Lohagad Fort\n\nBest With: Friends, bikes, and cutting chai ☕\n\n🌾 4. Valley of Flowers, Uttarakhand\nWhy: Opens only during monsoon, with 700+ species of blooming flowers\n\nUNESCO site\n\nIdeal for: Trekkers and nature lovers (mid-July to August is best)\n\n🏝️ 5. Agumbe, Karnataka\nWhy: Known as the \"Cherrapunji of the South\"\n\nHighlights: Rainforest trekking, sunset point, and King Cobra sightings\n\nPerfect for: Hardcore nature and wildlife lovers\n"

const dpExampleBody = "💡 Problem: Fibonacci Numbers\nFind the Nth Fibonacci number where:\nF(0) = 0, F(1) = 1\nF(n) = F(n-1) + F(n-2) for n ≥ 2\n\nCODE:\n```cpp\n#include <iostream>\nusing namespace std;\n\nint fibonacci(int n) {\n    if (n <= 1) return n;\n\n    int dp[n+1];\n    dp[0] = 0;\n    dp[1] = 1;\n\n    for (int i = 2; i <= n; i++) {\n        dp[i] = dp[i-1] + dp[i-2];\n    }\n\n    return dp[n];\n}\n\nint main() {\n    int n = 10;\n    cout << \"Fibonacci(\" << n << \") = \" << fibonacci(n) << endl;\n    return 0;\n}\n```"

const whyJisceBody = "Transparency and Information: The college aims to be transparent with prospective students and their families, providing comprehensive information about its programs, facilities, faculty, and other relevant aspects. This helps potential applicants make informed decisions.\nAttracting Students: Detailed information can showcase the college's strengths, achievements, and unique offerings, making it more appealing to prospective students."

const feesBody = "Here are the approximate average fees for various streams at JISCE:\n\nStream: B.Tech → ₹4.08 Lakhs (Total)\nStream: B.Tech (Lateral) → ₹3.01 Lakhs (Total)\nStream: Polytechnic → ₹1.35 Lakhs (Total)\nStream: BCA → ₹2.4 Lakhs (Total)\nStream: BBA → ₹2.4 Lakhs (Total)\nStream: MBA → ₹4.98 Lakhs (Total)\nStream: M.Tech → ₹2.23 Lakhs (Total)\n\nNote: These are approximate average fees. Actual fees may vary depending on the specific course, specializations, and any additional charges. For the most accurate and up-to-date fee information, please visit the official JIS College of Engineering website or contact the college directly."

const locationBody = "JIS College of Engineering is located at:\nBarrackpore - Kalyani Expy, Block A5, Block A, Kalyani, West Bengal 741235, India."

// entry binds a set of substring patterns to one canned markdown body.
// Entries are matched in order; the first hit wins.
type entry struct {
	patterns []string
	body     string
}

var freeTextEntries = []entry{
	{patterns: []string{"why jisce"}, body: whyJisceBody},
	{patterns: []string{"average fees", "fees"}, body: feesBody},
	{patterns: []string{"location", "address", "where is jisce"}, body: locationBody},
}

var cardEntries = map[string]string{
	CardBestCourses:   bestCoursesBody,
	CardBusinessIdeas: businessIdeasBody,
	CardTravelIdeas:   travelIdeasBody,
	CardDPExample:     dpExampleBody,
}

// Lookup matches the lowercased query against the ordered pattern list.
// The bool reports whether a canned answer was found; the caller decides
// what a miss means (fall through to the generative path).
func Lookup(rawText string) (string, bool) {
	lower := strings.ToLower(rawText)
	for _, e := range freeTextEntries {
		for _, p := range e.patterns {
			if strings.Contains(lower, p) {
				return e.body, true
			}
		}
	}
	return "", false
}

// LookupCard resolves a card shortcut key directly, no text matching.
func LookupCard(key string) (string, bool) {
	body, ok := cardEntries[key]
	return body, ok
}
