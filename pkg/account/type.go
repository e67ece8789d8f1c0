package account

//go:generate go run github.com/dmarkham/enumer -type Type -trimprefix Type -transform lower -json -text -yaml -output type.gen.go

// Type is the authentication type of an account.
type Type int

const (
	TypeLocal Type = iota
	TypeLDAP
)
