// Package trending holds the featured developers and sample searches shown
// to new users.
package trending

// Developer is a featured GitHub account.
type Developer struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var Developers = []Developer{
	{Login: "torvalds", Name: "Linus Torvalds", Description: "Creator of Linux and Git", Category: "System Programming"},
	{Login: "gaearon", Name: "Dan Abramov", Description: "React Core Team, Redux creator", Category: "Frontend"},
	{Login: "sindresorhus", Name: "Sindre Sorhus", Description: "Open source enthusiast", Category: "JavaScript"},
	{Login: "tj", Name: "TJ Holowaychuk", Description: "Express.js creator", Category: "Node.js"},
	{Login: "addyosmani", Name: "Addy Osmani", Description: "Google Chrome team", Category: "Performance"},
	{Login: "kentcdodds", Name: "Kent C. Dodds", Description: "Testing expert, educator", Category: "Education"},
	{Login: "yukihiro-matz", Name: "Yukihiro Matsumoto", Description: "Ruby creator", Category: "Language Design"},
	{Login: "defunkt", Name: "Chris Wanstrath", Description: "GitHub co-founder", Category: "Platform"},
}

var SampleSearches = []string{
	"octocat",
	"github",
	"microsoft",
	"google",
	"facebook",
	"vercel",
	"netflix",
	"spotify",
}
