package psg

// dacTable converts a 4-bit amplitude level (0-15) to a linear output
// contribution, normalized to [0, 1]. Level 0 is true silence; values
// above it follow a monotone, roughly exponential curve (step ratios
// between about 1.13 and 1.54) chosen for this package; they are not
// the ST-Sound reference table's constants.
var dacTable = [16]float32{
	0, 836, 1212, 1773, 2619, 3619, 5417, 7497,
	10869, 16706, 23399, 29547, 38079, 45333, 51027, 65535,
}

func init() {
	max := dacTable[15]
	for i := range dacTable {
		dacTable[i] /= max
	}
}
