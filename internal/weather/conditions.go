package weather

const (
	unknownDescription = "Conditions inconnues"
	defaultIcon        = "01d"
)

type condition struct {
	description string
	icon        string
}

// conditions maps WMO weather interpretation codes to French descriptions and
// day icons. Built once at init and only read afterwards.
var conditions = map[int]condition{
	0:  {"Ciel dégagé", "01d"},
	1:  {"Principalement dégagé", "02d"},
	2:  {"Partiellement nuageux", "03d"},
	3:  {"Couvert", "04d"},
	45: {"Brouillard", "50d"},
	48: {"Brouillard givrant", "50d"},
	51: {"Bruine légère", "09d"},
	53: {"Bruine modérée", "09d"},
	55: {"Bruine dense", "09d"},
	56: {"Bruine verglaçante légère", "09d"},
	57: {"Bruine verglaçante dense", "09d"},
	61: {"Pluie légère", "10d"},
	63: {"Pluie modérée", "10d"},
	65: {"Pluie forte", "10d"},
	66: {"Pluie verglaçante légère", "13d"},
	67: {"Pluie verglaçante forte", "13d"},
	71: {"Chute de neige légère", "13d"},
	73: {"Chute de neige modérée", "13d"},
	75: {"Chute de neige forte", "13d"},
	77: {"Grains de neige", "13d"},
	80: {"Averses de pluie légères", "09d"},
	81: {"Averses de pluie modérées", "09d"},
	82: {"Averses de pluie violentes", "09d"},
	85: {"Averses de neige légères", "13d"},
	86: {"Averses de neige fortes", "13d"},
	95: {"Orage", "11d"},
	96: {"Orage avec grêle légère", "11d"},
	99: {"Orage avec grêle forte", "11d"},
}

// Describe returns the description for a WMO code, or "Conditions inconnues".
func Describe(code int) string {
	if c, ok := conditions[code]; ok {
		return c.description
	}
	return unknownDescription
}

// IconFor returns the icon identifier for a WMO code, or "01d".
func IconFor(code int) string {
	if c, ok := conditions[code]; ok {
		return c.icon
	}
	return defaultIcon
}
