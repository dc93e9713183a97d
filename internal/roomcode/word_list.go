package roomcode

var adjectives = []string{
	"amber", "bold", "brisk", "calm", "coral", "crisp", "dusty", "eager", "fancy", "gentle",
	"hazy", "ivory", "jovial", "keen", "lively", "mellow", "misty", "noble", "olive", "plucky",
	"quiet", "rosy", "sunny", "swift", "teal", "velvet", "vivid", "warm", "wild", "zesty",
}

var creatures = []string{
	"badger", "bison", "crane", "falcon", "gecko", "heron", "ibex", "jackal", "kiwi", "lemur",
	"lynx", "magpie", "marmot", "newt", "ocelot", "osprey", "otter", "puffin", "quail", "raven",
	"seal", "stork", "tapir", "toucan", "viper", "vole", "walrus", "wren", "yak", "zebra",
}

var places = []string{
	"arbor", "atrium", "bay", "bluff", "canyon", "cove", "delta", "dune", "fjord", "glade",
	"grove", "harbor", "hollow", "isle", "lagoon", "mesa", "oasis", "orchard", "plaza", "quarry",
	"reef", "ridge", "savanna", "scala", "summit", "terrace", "tundra", "vale", "veranda", "wharf",
}
