
package taxonomy

import "sync"

const (
	Manufacturer Category = "Manufacturer"
	Brand        Category = "Brand"
	Distributor  Category = "Distributor"

	Probiotics      Category = "Probiotics"
	Fortification   Category = "Fortification"
	GutHealth       Category = "Gut Health"
	WomensHealth    Category = "Women's Health"
	CognitiveHealth Category = "Cognitive Health"
	SportsNutrition Category = "Sports Nutrition"
)

var defaultDefinitions = []Definition{
	{Manufacturer, GroupRole, []string{
		"manufacturer", "manufacturing", "production", "facility",
		"factory", "plants", "produces", "manufacturing facility",
	}},
	{Brand, GroupRole, []string{
		"brand", "products", "our range", "portfolio",
		"our brands", "product line", "offerings",
	}},
	{Distributor, GroupRole, []string{
		"distributor", "distribution", "wholesale", "supply chain",
		"logistics", "suppliers", "dealer network",
	}},
	{Probiotics, GroupTopic, []string{
		"probiotic", "probiotics", "beneficial bacteria", "live cultures",
		"gut flora", "microbiome", "lactobacillus", "bifidobacterium",
	}},
	{Fortification, GroupTopic, []string{
		"fortified", "fortification", "enriched", "vitamins", "minerals",
		"nutrient enrichment", "added nutrients", "supplemented",
	}},
	{GutHealth, GroupTopic, []string{
		"digestive health", "gut health", "digestive wellness", "microbiome",
		"digestive system", "gut barrier", "intestinal health",
	}},
	{WomensHealth, GroupTopic, []string{
		"women's health", "feminine", "pregnancy", "menopause",
		"women wellness", "maternal health", "female health",
	}},
	{CognitiveHealth, GroupTopic, []string{
		"brain health", "cognitive", "memory", "mental clarity",
		"brain function", "mental performance", "cognitive function",
	}},
	{SportsNutrition, GroupTopic, []string{
		"sports nutrition", "athletic", "performance", "protein powder",
		"exercise recovery", "sports performance", "muscle recovery",
	}},
}

var defaultSectorTriggers = []string{"food", "beverage", "nutrition", "drink", "snack", "dairy"}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry. It is built on first use and
// never changes afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(defaultDefinitions, defaultSectorTriggers)
		if err != nil {
			panic("taxonomy: invalid built-in definitions: " + err.Error())
		}
		defaultReg = r
	})
	return defaultReg
}
