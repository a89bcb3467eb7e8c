package mysql

// Flags represent MySQL column definition flags
type Flags uint16

// Column definition flags https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__column__definition__flags.html
const (
	NotNullFlag        Flags = 1
	PrimaryKeyFlag     Flags = 2
	UniqueKeyFlag      Flags = 4
	MultipleKeyFlag    Flags = 8
	BlobFlag           Flags = 16
	UnsignedFlag       Flags = 32
	ZerofillFlag       Flags = 64
	BinaryFlag         Flags = 128
	EnumFlag           Flags = 256
	AutoIncrementFlag  Flags = 512
	TimestampFlag      Flags = 1024
	SetFlag            Flags = 2048
	NoDefaultValueFlag Flags = 4096
	OnUpdateNowFlag    Flags = 8192
)

// ContainsFlag true if the flag is set
func (f Flags) ContainsFlag(flag Flags) bool {
	return f&flag == flag
}

// AddFlag set the flag
func (f *Flags) AddFlag(flag Flags) {
	*f |= flag
}

// RemoveFlag clear the flag
func (f *Flags) RemoveFlag(flag Flags) {
	*f &= ^flag
}
