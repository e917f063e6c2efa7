package domain

// MacroCodes are the four summary keys every daily summary carries.
var MacroCodes = []string{"k", "p", "c", "f"}

// MicroCodes is the fixed superset of USDA nutrient numbers written to every
// daily micro summary. Codes with no accumulated contribution are written as
// explicit nulls so the summary's key set stays identical across writes,
// which keeps masked patching from leaving stale values behind.
var MicroCodes = []string{
	"210", // sucrose
	"211", // glucose
	"212", // fructose
	"213", // lactose
	"214", // maltose
	"221", // alcohol
	"255", // water
	"262", // caffeine
	"269", // total sugars
	"287", // galactose
	"291", // fiber
	"301", // calcium
	"303", // iron
	"304", // magnesium
	"305", // phosphorus
	"306", // potassium
	"307", // sodium
	"309", // zinc
	"312", // copper
	"313", // fluoride
	"315", // manganese
	"317", // selenium
	"320", // vitamin A, RAE
	"321", // beta-carotene
	"322", // alpha-carotene
	"323", // vitamin E
	"324", // vitamin D
	"334", // beta-cryptoxanthin
	"337", // lycopene
	"338", // lutein + zeaxanthin
	"401", // vitamin C
	"404", // thiamin
	"405", // riboflavin
	"406", // niacin
	"410", // pantothenic acid
	"415", // vitamin B6
	"417", // folate, total
	"418", // vitamin B12
	"421", // choline
	"430", // vitamin K
	"431", // folic acid
	"435", // folate, DFE
	"454", // betaine
	"539", // added sugars
	"573", // added vitamin E
	"578", // added vitamin B12
	"601", // cholesterol
	"605", // trans fat
	"606", // saturated fat
	"636", // phytosterols
	"645", // monounsaturated fat
	"646", // polyunsaturated fat
}

// IsMicroCode reports whether a record key is a digit-only nutrient code
// outside the macro letter set.
func IsMicroCode(key string) bool {
	return digitsOnly(key)
}
