package recommendation

// DefaultSynergies lists known complementary partners, keyed by supplement id.
func DefaultSynergies() map[string][]string {
	return map[string][]string{
		"piracetam": {"cdp-choline", "alpha-gpc"},
		"noopept":   {"cdp-choline", "alpha-gpc"},
		"caffeine":  {"l-theanine"},
		"omega-3":   {"vitamin-d3"},
		"magnesium": {"vitamin-d3", "zinc"},
		"curcumin":  {"pycnogenol", "resveratrol"},
	}
}
