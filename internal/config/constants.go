package config

// Built-in primitive type names as written in source.
const (
	BoolTypeName     = "bool"
	U8TypeName       = "u8"
	U16TypeName      = "u16"
	U32TypeName      = "u32"
	U64TypeName      = "u64"
	ByteTypeName     = "byte"
	B256TypeName     = "b256"
	StrTypeName      = "str"
	StringTypeName   = "string"
	SelfTypeName     = "Self"
	UnderscoreName   = "_"
	ContractTypeName = "Contract"
)

// DefaultMaxErrors caps the number of hard errors accumulated before the
// handler stops recording new ones. Zero means unlimited.
const DefaultMaxErrors = 100

// MaxTypeRecursionDepth bounds recursive type walks (Ref chasing, structural
// comparison) so a malformed descriptor chain cannot loop.
const MaxTypeRecursionDepth = 128

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = "swayc.yaml"
