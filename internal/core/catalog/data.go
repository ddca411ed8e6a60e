package catalog

// defaultCategories 內建食材分類，順序即分類優先序
var defaultCategories = []Category{
	{
		Name: "vegetables",
		Items: []string{
			"tomato", "onion", "garlic", "potato", "carrot", "lettuce", "spinach", "broccoli",
			"cauliflower", "bell pepper", "cucumber", "mushroom", "eggplant", "zucchini", "squash", "corn",
			"peas", "beans", "celery", "kale", "cabbage", "radish", "turnip", "beet", "asparagus",
			"artichoke", "bok choy", "napa cabbage", "daikon", "watercress", "arugula", "endive", "fennel",
			"leek", "shallot", "scallion", "green onion", "chives", "parsnip", "rutabaga", "sweet potato",
			"yam", "pumpkin", "butternut squash", "acorn squash", "spaghetti squash", "pattypan squash",
			"chayote", "jicama", "taro", "cassava", "plantain", "okra", "brussels sprouts",
			"collard greens", "mustard greens", "turnip greens", "beet greens",
		},
	},
	{
		Name: "fruits",
		Items: []string{
			"apple", "banana", "orange", "lemon", "lime", "strawberry", "blueberry", "grape", "peach",
			"pear", "plum", "cherry", "mango", "pineapple", "coconut", "avocado", "olive", "kiwi",
			"raspberry", "blackberry", "cranberry", "fig", "date", "prune", "raisin", "apricot",
			"nectarine", "persimmon", "pomegranate", "guava", "papaya", "dragon fruit", "lychee", "longan",
			"rambutan", "durian", "jackfruit", "breadfruit", "soursop", "custard apple", "sapodilla",
			"star fruit", "kumquat", "calamondin", "yuzu", "buddha hand", "finger lime", "blood orange",
			"clementine", "tangerine", "mandarin", "satsuma", "ugli fruit", "tangelo",
		},
	},
	{
		Name: "meats",
		Items: []string{
			"chicken", "beef", "pork", "lamb", "turkey", "duck", "fish", "salmon", "tuna", "shrimp", "crab",
			"lobster", "bacon", "ham", "sausage", "steak", "ground beef", "pork chop", "chicken breast",
			"fish fillet", "cod", "halibut", "mackerel", "sardine", "anchovy", "herring", "trout", "bass",
			"tilapia", "catfish", "swordfish", "mahi mahi", "grouper", "red snapper", "sea bass",
			"flounder", "sole", "perch", "pike", "walleye", "bluefish", "marlin", "sailfish", "wahoo",
			"goose", "quail", "pheasant", "partridge", "guinea fowl", "squab", "venison", "bison", "elk",
			"moose", "rabbit", "goat", "mutton", "veal", "liver", "kidney", "heart", "tongue", "tripe",
			"oxtail",
		},
	},
	{
		Name: "dairy",
		Items: []string{
			"milk", "cheese", "yogurt", "butter", "cream", "sour cream", "cottage cheese", "cream cheese",
			"mozzarella", "cheddar", "parmesan", "feta", "ricotta", "gouda", "swiss", "brie", "camembert",
			"blue cheese", "roquefort", "stilton", "gorgonzola", "provolone", "asiago", "pecorino",
			"manchego", "halloumi", "paneer", "tofu", "tempeh", "soy milk", "almond milk", "oat milk",
			"coconut milk", "cashew milk", "rice milk", "hemp milk", "flax milk", "quark", "kefir",
			"buttermilk", "heavy cream", "half and half", "whipping cream", "clotted cream", "mascarpone",
			"crème fraîche", "labneh", "skyr",
		},
	},
	{
		Name: "grains",
		Items: []string{
			"rice", "pasta", "bread", "flour", "wheat", "oats", "quinoa", "barley", "cornmeal", "couscous",
			"bulgur", "millet", "rye", "buckwheat", "spelt", "farro", "amaranth", "teff", "sorghum",
			"job's tears", "wild rice", "black rice", "red rice", "brown rice", "jasmine rice",
			"basmati rice", "arborio rice", "carnaroli rice", "vialone nano rice", "bomba rice",
			"calrose rice", "sticky rice", "glutinous rice", "sushi rice", "risotto rice", "paella rice",
			"forbidden rice", "purple rice", "japonica rice", "indica rice",
		},
	},
	{
		Name: "nuts_seeds",
		Items: []string{
			"almond", "walnut", "peanut", "cashew", "pistachio", "pecan", "macadamia", "hazelnut",
			"sunflower seed", "pumpkin seed", "chia seed", "flax seed", "sesame seed", "pine nut",
			"brazil nut", "pili nut", "candlenut", "kukui nut", "tiger nut", "water chestnut", "lotus seed",
			"lotus root", "taro root", "arrowroot", "sago", "tapioca", "agar agar", "carrageenan",
			"xanthan gum", "guar gum", "locust bean gum", "psyllium husk", "hemp seed", "pumpkin seed",
			"watermelon seed", "cantaloupe seed", "apricot kernel", "peach kernel",
		},
	},
	{
		Name: "herbs_spices",
		Items: []string{
			"salt", "pepper", "basil", "oregano", "thyme", "rosemary", "sage", "parsley", "cilantro",
			"dill", "mint", "bay leaf", "cinnamon", "nutmeg", "ginger", "turmeric", "cumin", "paprika",
			"chili powder", "garlic powder", "onion powder", "cardamom", "cloves", "allspice", "star anise",
			"fennel seed", "caraway seed", "celery seed", "mustard seed", "poppy seed", "nigella seed",
			"fenugreek", "asafoetida", "sumac", "za'atar", "ras el hanout", "berbere", "garam masala",
			"curry powder", "five spice powder", "seven spice powder", "dukkah", "furikake",
			"shichimi togarashi",
		},
	},
	{
		Name: "oils_condiments",
		Items: []string{
			"olive oil", "vegetable oil", "canola oil", "coconut oil", "vinegar", "soy sauce", "ketchup",
			"mustard", "mayonnaise", "hot sauce", "worcestershire sauce", "fish sauce", "sesame oil",
			"avocado oil", "grapeseed oil", "sunflower oil", "safflower oil", "peanut oil", "walnut oil",
			"almond oil", "hazelnut oil", "pumpkin seed oil", "flaxseed oil", "hemp oil", "argan oil",
			"truffle oil", "chili oil", "garlic oil", "onion oil", "lemon oil", "lime oil", "orange oil",
			"bergamot oil", "rose oil", "lavender oil", "balsamic vinegar", "apple cider vinegar",
			"red wine vinegar", "white wine vinegar", "rice vinegar", "malt vinegar", "sherry vinegar",
			"champagne vinegar", "black vinegar", "coconut vinegar", "date vinegar",
		},
	},
	{
		Name: "legumes",
		Items: []string{
			"lentil", "chickpea", "black bean", "kidney bean", "pinto bean", "navy bean", "cannellini bean",
			"lima bean", "fava bean", "adzuki bean", "mung bean", "soybean", "split pea", "black eyed pea",
			"cowpea", "pigeon pea", "bambara groundnut", "winged bean", "hyacinth bean", "lablab bean",
			"velvet bean", "jack bean", "sword bean", "rice bean", "moth bean", "urad dal", "toor dal",
			"masoor dal", "chana dal", "moong dal", "rajma", "chole",
		},
	},
	{
		Name: "seaweed",
		Items: []string{
			"nori", "wakame", "kombu", "dulse", "arame", "hijiki", "sea lettuce", "irish moss",
			"bladderwrack", "rockweed", "sea grapes", "ogo", "mozuku", "tengusa", "agar agar",
		},
	},
	{
		Name: "fungi",
		Items: []string{
			"mushroom", "shiitake", "oyster mushroom", "portobello", "cremini", "button mushroom", "enoki",
			"maitake", "reishi", "chaga", "cordyceps", "lion's mane", "turkey tail", "chicken of the woods",
			"morel", "chanterelle", "porcini", "truffle", "black truffle", "white truffle",
			"summer truffle", "winter truffle",
		},
	},
}

// defaultTypos 常見拼字錯誤與複數形
var defaultTypos = map[string]string{
	"appel":        "apple",
	"bananna":      "banana",
	"tomatos":      "tomato",
	"onions":       "onion",
	"garlics":      "garlic",
	"potatos":      "potato",
	"carrots":      "carrot",
	"lettuces":     "lettuce",
	"spinaches":    "spinach",
	"broccolis":    "broccoli",
	"cauliflowers": "cauliflower",
	"cucumbers":    "cucumber",
	"mushrooms":    "mushroom",
	"eggplants":    "eggplant",
	"zucchinis":    "zucchini",
	"squashes":     "squash",
	"corns":        "corn",
	"peas":         "pea",
	"beans":        "bean",
	"rices":        "rice",
	"pastas":       "pasta",
	"breads":       "bread",
	"flours":       "flour",
	"sugars":       "sugar",
	"salts":        "salt",
	"peppers":      "pepper",
	"oils":         "oil",
	"vinegars":     "vinegar",
	"cheeses":      "cheese",
	"milks":        "milk",
	"yogurts":      "yogurt",
	"butters":      "butter",
	"eggs":         "egg",
	"chickens":     "chicken",
	"beefs":        "beef",
	"porks":        "pork",
	"fishes":       "fish",
	"shrimps":      "shrimp",
	"salmons":      "salmon",
	"tunas":        "tuna",
	"oranges":      "orange",
	"lemons":       "lemon",
	"limes":        "lime",
	"strawberries": "strawberry",
	"blueberries":  "blueberry",
	"grapes":       "grape",
	"peaches":      "peach",
	"pears":        "pear",
	"plums":        "plum",
	"cherries":     "cherry",
	"mangos":       "mango",
	"pineapples":   "pineapple",
	"coconuts":     "coconut",
	"avocados":     "avocado",
	"olives":       "olive",
	"almonds":      "almond",
	"walnuts":      "walnut",
	"peanuts":      "peanut",
	"cashews":      "cashew",
	"pistachios":   "pistachio",
}
