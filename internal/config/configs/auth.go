package configs

// Auth configures bearer token verification. Tokens are HS256 JWTs whose
// subject is the caller's address.
type Auth struct {
	Secret string `env:"SECRET,required,notEmpty"`
	Issuer string `env:"ISSUER" envDefault:"fund-ledger"`
}
