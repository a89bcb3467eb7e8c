package mysql

// Field describes one result set column as reported by the server in a column
// definition packet, carrying just enough for sizing an output binding.
type Field struct {
	Name      string
	Type      Type
	Flags     Flags
	MaxLength uint32
}

// IsUnsigned true if the column carries the unsigned flag
func (f Field) IsUnsigned() bool {
	return f.Flags.ContainsFlag(UnsignedFlag)
}
