package engine

// Category represents the three rent regimes an asset can belong to.
type Category int

const (
	CategoryStandard Category = 0 // color group, tiered rent table
	CategoryStation  Category = 1 // rent by number of stations owned
	CategoryUtility  Category = 2 // rent by dice total
)

var categoryNames = map[Category]string{
	CategoryStandard: "Standard",
	CategoryStation:  "Station",
	CategoryUtility:  "Utility",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "Unknown"
}

// groupSizes maps each group to the number of assets forming a complete set.
var groupSizes = map[string]int{
	"Brown": 2, "Light Blue": 3, "Pink": 3, "Orange": 3,
	"Red": 3, "Yellow": 3, "Green": 3, "Deep Blue": 2,
	"Station": 4, "Utilities": 2,
}

// stationRents is indexed by (stations owned - 1).
var stationRents = [4]int{25, 50, 100, 200}

// Asset represents a purchasable board tile.
type Asset struct {
	Position  int      `json:"position"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	RentTable []int    `json:"rent_table"` // indexed by houses for standard groups
	HouseCost int      `json:"house_cost"`
	Group     string   `json:"group"`
	Category  Category `json:"category"`

	Houses    int          `json:"houses"` // 0-4, 5 meaning a hotel
	Owner     *Participant `json:"-"`
	Mortgaged bool         `json:"mortgaged"`

	GroupComplete    bool `json:"group_complete"`
	AlreadyAuctioned bool `json:"already_auctioned"`
}

// Rent computes what a visitor owes, given the dice total that brought them
// here. Pure: no state is modified. Returns 0 for unowned assets and for
// utilities when no dice total is supplied.
func (a *Asset) Rent(diceTotal int) int {
	if a.Owner == nil {
		return 0
	}
	switch a.Category {
	case CategoryUtility:
		if diceTotal == 0 {
			return 0
		}
		multiplier := 10
		if a.Owner.GroupCount(a.Group) == 1 {
			multiplier = 4
		}
		return diceTotal * multiplier
	case CategoryStation:
		return stationRents[a.Owner.GroupCount(a.Group)-1]
	default:
		if a.Owner.OwnsGroup(a.Group) && a.Houses == 0 {
			return a.RentTable[0] * 2 // double rent for a complete, unimproved set
		}
		return a.RentTable[a.Houses]
	}
}

// GroupSize returns how many assets complete this asset's group.
func (a *Asset) GroupSize() int {
	return groupSizes[a.Group]
}

// BoardAssets returns the 29 purchasable tiles of the standard board.
func BoardAssets() map[int]*Asset {
	assets := make(map[int]*Asset)
	add := func(pos int, name string, price int, rent []int, houseCost int, group string) {
		cat := CategoryStandard
		switch group {
		case "Station":
			cat = CategoryStation
		case "Utilities":
			cat = CategoryUtility
		}
		assets[pos] = &Asset{
			Position:  pos,
			Name:      name,
			Price:     price,
			RentTable: rent,
			HouseCost: houseCost,
			Group:     group,
			Category:  cat,
		}
	}

	add(2, "The Old Creek", 60, []int{2, 10, 30, 90, 160, 250}, 50, "Brown")
	add(4, "Gangsters Paradise", 60, []int{4, 20, 60, 180, 320, 450}, 50, "Brown")
	add(6, "Brighton Station", 200, []int{25, 50, 100, 200}, 0, "Station")
	add(7, "The Angels Delight", 100, []int{6, 30, 90, 270, 400, 550}, 50, "Light Blue")
	add(9, "Potter Avenue", 100, []int{6, 30, 90, 270, 400, 550}, 50, "Light Blue")
	add(10, "Granger Drive", 120, []int{8, 40, 100, 300, 450, 600}, 50, "Light Blue")
	add(12, "Skywalker Drive", 140, []int{10, 50, 150, 450, 625, 750}, 100, "Pink")
	add(13, "Tesla Power Co", 150, []int{4, 10}, 0, "Utilities")
	add(14, "Wookie Hole", 140, []int{10, 50, 150, 450, 625, 750}, 100, "Pink")
	add(15, "Rey Lane", 160, []int{12, 60, 180, 500, 700, 900}, 100, "Pink")
	add(16, "Hove Station", 200, []int{25, 50, 100, 200}, 0, "Station")
	add(17, "Bishop Drive", 180, []int{14, 70, 200, 550, 750, 950}, 100, "Orange")
	add(19, "Dunham Street", 180, []int{14, 70, 200, 550, 750, 950}, 100, "Orange")
	add(20, "Broyles Lane", 200, []int{16, 80, 220, 600, 800, 1000}, 100, "Orange")
	add(22, "Yue Fei Square", 220, []int{18, 90, 250, 700, 875, 1050}, 150, "Red")
	add(24, "Mulan Rouge", 220, []int{18, 90, 250, 700, 875, 1050}, 150, "Red")
	add(25, "Han Xin Gardens", 240, []int{20, 100, 300, 750, 925, 1100}, 150, "Red")
	add(26, "Falmer Station", 200, []int{25, 50, 100, 200}, 0, "Station")
	add(27, "Shatner Close", 260, []int{22, 110, 330, 800, 975, 1150}, 150, "Yellow")
	add(28, "Picard Avenue", 260, []int{22, 110, 330, 800, 975, 1150}, 150, "Yellow")
	add(29, "Edison Water", 150, []int{4, 10}, 0, "Utilities")
	add(30, "Crusher Creek", 280, []int{24, 120, 360, 850, 1025, 1200}, 150, "Yellow")
	add(32, "Sirat Mews", 300, []int{26, 130, 390, 900, 1100, 1275}, 200, "Green")
	add(33, "Ghengis Crescent", 300, []int{26, 130, 390, 900, 1100, 1275}, 200, "Green")
	add(35, "Ibis Close", 320, []int{28, 150, 450, 1000, 1200, 1400}, 200, "Green")
	add(36, "Portslade Station", 200, []int{25, 50, 100, 200}, 0, "Station")
	add(38, "James Webb Way", 350, []int{35, 175, 500, 1100, 1300, 1500}, 200, "Deep Blue")
	add(40, "Turing Heights", 400, []int{50, 200, 600, 1400, 1700, 2000}, 200, "Deep Blue")

	return assets
}
