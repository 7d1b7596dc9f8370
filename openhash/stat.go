package openhash

// Stat - Statistics on how entries are distributed over the slots of a container
//   - Size is the number of entries
//   - Slots is the length of the backing buffer
//   - ResizeAt is the number of entries at which the buffer will grow
//   - LoadFactor is the load factor the container was created with
//   - MaxProbeDistance is the largest distance of any entry from its ideal slot
//   - AverageProbeDistance is the mean distance of entries from their ideal slots
//   - ProbeDistribution holds at index d the number of entries sitting d slots from their ideal slot
type Stat struct {
	Size                 int
	Slots                int
	ResizeAt             int
	LoadFactor           float64
	MaxProbeDistance     int
	AverageProbeDistance float64
	ProbeDistribution    []int
}
