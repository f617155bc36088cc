package registry

type fiatEntry struct {
	Name string
	Logo string
}

// fiatOrder fixes search order; map iteration is random.
var fiatOrder = []string{"USD", "GBP", "JPY", "AUD", "CAD", "MXN", "PHP", "BRL", "EUR", "SATOSHI"}

var fiatData = map[string]fiatEntry{
	"USD":     {Name: "US Dollar", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_USD.png"},
	"GBP":     {Name: "British Pound", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_GBP.png"},
	"JPY":     {Name: "Japanese Yen", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_JPY.png"},
	"AUD":     {Name: "Australian Dollar", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_AUD.png"},
	"CAD":     {Name: "Canadian Dollar", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_CAD.png"},
	"MXN":     {Name: "Mexican Nuevo Peso", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_MXN.png"},
	"PHP":     {Name: "Philippine Peso", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_PHP.png"},
	"BRL":     {Name: "Brazilian Real", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_BRL.png"},
	"EUR":     {Name: "Euro", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_EUR.png"},
	"SATOSHI": {Name: "Satoshi", Logo: "https://ih.advfn.com/cdn/crypto/logos/original/_SATOSHI.png"},
}
