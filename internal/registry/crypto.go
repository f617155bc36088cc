package registry

// CryptoLogoBaseURL prefixes the relative logo paths of the crypto table.
const CryptoLogoBaseURL = "https://ih.advfn.com"

type cryptoEntry struct {
	Name string
	Logo string
}

var cryptoOrder = []string{
	"BTC", "ETH", "USDT", "BNB", "XRP", "USDC", "SOL", "ADA", "DOGE", "TRX",
	"LTC", "DOT", "MATIC", "BCH", "LINK", "XLM", "AVAX", "ATOM", "XMR", "ETC",
	"UNI", "FIL", "HBAR", "ICP", "APT", "NEAR", "ALGO", "VET", "SHIB", "DAI",
	"AAVE", "EOS", "XTZ", "SAND", "MANA", "BAT", "ZEC", "DASH", "BSV", "BTG",
}

var cryptoData = map[string]cryptoEntry{
	"BTC":   {Name: "Bitcoin", Logo: "/cdn/crypto/logos/original/BTC.png"},
	"ETH":   {Name: "Ethereum", Logo: "/cdn/crypto/logos/original/ETH.png"},
	"USDT":  {Name: "Tether", Logo: "/cdn/crypto/logos/original/USDT.png"},
	"BNB":   {Name: "BNB", Logo: "/cdn/crypto/logos/original/BNB.png"},
	"XRP":   {Name: "XRP", Logo: "/cdn/crypto/logos/original/XRP.png"},
	"USDC":  {Name: "USD Coin", Logo: "/cdn/crypto/logos/original/USDC.png"},
	"SOL":   {Name: "Solana", Logo: "/cdn/crypto/logos/original/SOL.png"},
	"ADA":   {Name: "Cardano", Logo: "/cdn/crypto/logos/original/ADA.png"},
	"DOGE":  {Name: "Dogecoin", Logo: "/cdn/crypto/logos/original/DOGE.png"},
	"TRX":   {Name: "TRON", Logo: "/cdn/crypto/logos/original/TRX.png"},
	"LTC":   {Name: "Litecoin", Logo: "/cdn/crypto/logos/original/LTC.png"},
	"DOT":   {Name: "Polkadot", Logo: "/cdn/crypto/logos/original/DOT.png"},
	"MATIC": {Name: "Polygon", Logo: "/cdn/crypto/logos/original/MATIC.png"},
	"BCH":   {Name: "Bitcoin Cash", Logo: "/cdn/crypto/logos/original/BCH.png"},
	"LINK":  {Name: "Chainlink", Logo: "/cdn/crypto/logos/original/LINK.png"},
	"XLM":   {Name: "Stellar", Logo: "/cdn/crypto/logos/original/XLM.png"},
	"AVAX":  {Name: "Avalanche", Logo: "/cdn/crypto/logos/original/AVAX.png"},
	"ATOM":  {Name: "Cosmos", Logo: "/cdn/crypto/logos/original/ATOM.png"},
	"XMR":   {Name: "Monero", Logo: "/cdn/crypto/logos/original/XMR.png"},
	"ETC":   {Name: "Ethereum Classic", Logo: "/cdn/crypto/logos/original/ETC.png"},
	"UNI":   {Name: "Uniswap", Logo: "/cdn/crypto/logos/original/UNI.png"},
	"FIL":   {Name: "Filecoin", Logo: "/cdn/crypto/logos/original/FIL.png"},
	"HBAR":  {Name: "Hedera", Logo: "/cdn/crypto/logos/original/HBAR.png"},
	"ICP":   {Name: "Internet Computer", Logo: "/cdn/crypto/logos/original/ICP.png"},
	"APT":   {Name: "Aptos", Logo: "/cdn/crypto/logos/original/APT.png"},
	"NEAR":  {Name: "NEAR Protocol", Logo: "/cdn/crypto/logos/original/NEAR.png"},
	"ALGO":  {Name: "Algorand", Logo: "/cdn/crypto/logos/original/ALGO.png"},
	"VET":   {Name: "VeChain", Logo: "/cdn/crypto/logos/original/VET.png"},
	"SHIB":  {Name: "Shiba Inu", Logo: "/cdn/crypto/logos/original/SHIB.png"},
	"DAI":   {Name: "Dai", Logo: "/cdn/crypto/logos/original/DAI.png"},
	"AAVE":  {Name: "Aave", Logo: "/cdn/crypto/logos/original/AAVE.png"},
	"EOS":   {Name: "EOS", Logo: "/cdn/crypto/logos/original/EOS.png"},
	"XTZ":   {Name: "Tezos", Logo: "/cdn/crypto/logos/original/XTZ.png"},
	"SAND":  {Name: "The Sandbox", Logo: "/cdn/crypto/logos/original/SAND.png"},
	"MANA":  {Name: "Decentraland", Logo: "/cdn/crypto/logos/original/MANA.png"},
	"BAT":   {Name: "Basic Attention Token", Logo: "/cdn/crypto/logos/original/BAT.png"},
	"ZEC":   {Name: "Zcash", Logo: "/cdn/crypto/logos/original/ZEC.png"},
	"DASH":  {Name: "Dash", Logo: "/cdn/crypto/logos/original/DASH.png"},
	"BSV":   {Name: "Bitcoin SV", Logo: "/cdn/crypto/logos/original/BSV.png"},
	"BTG":   {Name: "Bitcoin Gold", Logo: "/cdn/crypto/logos/original/BTG.png"},
}
