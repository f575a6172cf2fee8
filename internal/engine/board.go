package engine

// Fixed tile positions on the 40-tile board.
const (
	BoardSize           = 40
	OriginPosition      = 1
	JailPosition        = 11
	FreeParkingPosition = 21
	GoToJailPosition    = 31
)

// TileKind classifies the non-purchasable tiles a participant can land on.
type TileKind int

const (
	TileAsset       TileKind = iota // purchasable property
	TileOrigin                      // GO
	TileTax                         // pay into the tax pool
	TilePotLuck                     // draw from the Pot Luck deck
	TileOpportunity                 // draw from the Opportunity Knocks deck
	TileGoToJail                    // straight to jail
	TileFreeParking                 // collects the tax pool
	TileJailVisit                   // jail tile, just visiting
)

// taxAmounts maps tax tile positions to the amount charged.
var taxAmounts = map[int]int{5: 200, 39: 75}

// TileAt classifies a board position.
func TileAt(pos int) TileKind {
	switch pos {
	case OriginPosition:
		return TileOrigin
	case 5, 39:
		return TileTax
	case 3, 18, 34:
		return TilePotLuck
	case 8, 23, 37:
		return TileOpportunity
	case GoToJailPosition:
		return TileGoToJail
	case FreeParkingPosition:
		return TileFreeParking
	case JailPosition:
		return TileJailVisit
	default:
		return TileAsset
	}
}

// TileName returns a display name for any board position.
func TileName(pos int, assets map[int]*Asset) string {
	if a, ok := assets[pos]; ok {
		return a.Name
	}
	switch TileAt(pos) {
	case TileOrigin:
		return "GO"
	case TileTax:
		if pos == 5 {
			return "Income Tax"
		}
		return "Luxury Tax"
	case TilePotLuck:
		return "Pot Luck"
	case TileOpportunity:
		return "Opportunity Knocks"
	case TileGoToJail:
		return "Go To Jail"
	case TileFreeParking:
		return "Free Parking"
	case TileJailVisit:
		return "Jail"
	}
	return "Unknown Tile"
}
