// Package economy defines the goods produced by resource nodes.
package economy

// Resource is a raw good harvested at a resource node.
type Resource uint8

const (
	ResourceWheat  Resource = iota // From farms on plains
	ResourceOre                    // From mines in mountains
	ResourceLumber                 // From lumbermills in forests
)

// Resources lists every resource in declaration order.
var Resources = []Resource{ResourceWheat, ResourceOre, ResourceLumber}

// String returns a human-readable resource name.
func (r Resource) String() string {
	switch r {
	case ResourceWheat:
		return "Wheat"
	case ResourceOre:
		return "Ore"
	case ResourceLumber:
		return "Lumber"
	default:
		return "Unknown"
	}
}

// BasePrice is the production-cost floor of a resource in crowns, used by
// gameplay systems to value shipments.
func (r Resource) BasePrice() float64 {
	switch r {
	case ResourceWheat:
		return 2
	case ResourceOre:
		return 4
	case ResourceLumber:
		return 3
	default:
		return 0
	}
}
