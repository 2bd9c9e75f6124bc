package discovery

import (
	"math/rand/v2"
	"slices"
)

// Tier is the size class of a seed company.
type Tier string

const (
	TierMNC     Tier = "MNC"
	TierUnicorn Tier = "Unicorn"
	TierStartup Tier = "Startup"
	TierPSU     Tier = "PSU"
)

// Company is a seed employer for targeted searches.
type Company struct {
	Name string `yaml:"name"`
	Tier Tier   `yaml:"tier"`
}

// DefaultCompanies returns the built-in seed list of Indian employers.
func DefaultCompanies() []Company {
	return []Company{
		{Name: "TCS", Tier: TierMNC},
		{Name: "Infosys", Tier: TierMNC},
		{Name: "Wipro", Tier: TierMNC},
		{Name: "HCLTech", Tier: TierMNC},
		{Name: "Tech Mahindra", Tier: TierMNC},
		{Name: "Accenture India", Tier: TierMNC},
		{Name: "Cognizant", Tier: TierMNC},
		{Name: "L&T Technology Services", Tier: TierMNC},
		{Name: "Flipkart", Tier: TierUnicorn},
		{Name: "Zomato", Tier: TierUnicorn},
		{Name: "Swiggy", Tier: TierUnicorn},
		{Name: "Razorpay", Tier: TierUnicorn},
		{Name: "Zerodha", Tier: TierUnicorn},
		{Name: "CRED", Tier: TierUnicorn},
		{Name: "PhonePe", Tier: TierUnicorn},
		{Name: "Meesho", Tier: TierUnicorn},
		{Name: "Freshworks", Tier: TierUnicorn},
		{Name: "Zoho", Tier: TierUnicorn},
		{Name: "ISRO", Tier: TierPSU},
		{Name: "DRDO", Tier: TierPSU},
		{Name: "BHEL", Tier: TierPSU},
	}
}

// PickTargets returns up to n random companies of the given tiers.
func PickTargets(companies []Company, tiers []Tier, n int, rng *rand.Rand) []Company {
	pool := make([]Company, 0, len(companies))
	for _, c := range companies {
		if slices.Contains(tiers, c.Tier) {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
