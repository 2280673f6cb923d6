package consts

const (
	// NEARBY_DISTANCE_RANGE is the radius in meters used to find
	// volunteers close to a requester's registered points.
	NEARBY_DISTANCE_RANGE = 50000

	// NEARBY_VOLUNTEER_LIMIT caps how many volunteers a new-request
	// broadcast reaches.
	NEARBY_VOLUNTEER_LIMIT = 100
)
