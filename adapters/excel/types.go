package excel

// RawRows is a sheet of string cells, header row first
type RawRows [][]string

// columnProfile summarises the cells of one raw column
type columnProfile struct {
	present int
	numeric int
}

func (p columnProfile) numericRatio() float64 {
	if p.present == 0 {
		return 0
	}
	return float64(p.numeric) / float64(p.present)
}
