package noise

// Field is a row-major 2D array of scalar noise values.
type Field struct {
	Width  int
	Height int
	Data   []float64
}

// NewField allocates a zeroed width x height field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Data[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Data[y*f.Width+x] = v
}

// Row returns row y as a slice sharing the field's storage.
func (f *Field) Row(y int) []float64 {
	return f.Data[y*f.Width : (y+1)*f.Width]
}

// Rows returns the field as a slice of rows sharing the field's storage.
func (f *Field) Rows() [][]float64 {
	rows := make([][]float64, f.Height)
	for y := range rows {
		rows[y] = f.Row(y)
	}
	return rows
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	c := &Field{Width: f.Width, Height: f.Height, Data: make([]float64, len(f.Data))}
	copy(c.Data, f.Data)
	return c
}
