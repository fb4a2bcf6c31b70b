package destination

// Domestic is the country with first-class region and city selectors.
const Domestic = "Côte d'Ivoire"

// Other is the catch-all country whose city is always typed freely.
const Other = "Autre"

// UnknownPrefix is shown for countries without a dialing code entry.
const UnknownPrefix = "+XXX"

// Phone placeholders by address path.
const (
	DomesticPhonePlaceholder = "0XXXXXXXXX"
	OtherPhonePlaceholder    = "+XXXXXXXXXX"
	ForeignPhonePlaceholder  = "XXXXXXXXXX"
)

type country struct {
	name   string
	prefix string
	cities []string
}

// countries is ordered as presented in the country selector.
var countries = []country{
	{Domestic, "+225", []string{"Abidjan", "Yamoussoukro", "Bouaké", "Korhogo", "San-Pédro", "Daloa", "Man", "Gagnoa"}},
	{"Mali", "+223", []string{"Bamako", "Sikasso", "Kayes", "Ségou", "Mopti", "Koulikoro", "Gao", "Tombouctou"}},
	{"Burkina Faso", "+226", []string{"Ouagadougou", "Bobo-Dioulasso", "Koudougou", "Banfora", "Dédougou", "Dori", "Fada N'gourma", "Tenkodogo"}},
	{"Sénégal", "+221", []string{"Dakar", "Thiès", "Saint-Louis", "Ziguinchor", "Kaolack", "Touba", "Mbour", "Kédougou"}},
	{"Ghana", "+233", []string{"Accra", "Kumasi", "Tamale", "Takoradi", "Ashaiman", "Sunyani", "Cape Coast", "Obuasi"}},
	{"Togo", "+228", []string{"Lomé", "Sokodé", "Kara", "Atakpamé", "Dapaong", "Tsévié", "Bassar", "Vogan"}},
	{"Bénin", "+229", []string{"Cotonou", "Porto-Novo", "Parakou", "Abomey", "Bohicon", "Kandi", "Natitingou", "Djougou"}},
	{"Guinée", "+224", []string{"Conakry", "Nzérékoré", "Kindia", "Kankan", "Guéckédou", "Mamou", "Faranah", "Boké"}},
	{"Niger", "+227", []string{"Niamey", "Maradi", "Zinder", "Tahoua", "Dosso", "Agadez", "Diffa", "Tillabéri"}},
	{"Nigeria", "+234", []string{"Lagos", "Abuja", "Kano", "Ibadan", "Port Harcourt", "Benin City", "Kaduna", "Jos"}},
	{"Cameroun", "+237", []string{"Douala", "Yaoundé", "Garoua", "Bafoussam", "Bamenda", "Maroua", "Buea", "Kribi"}},
	{"Congo", "+242", []string{"Brazzaville", "Pointe-Noire", "Dolisie", "Nkayi", "Ouesso", "Loandjili", "Impfondo", "Makoua"}},
	{"Gabon", "+241", []string{"Libreville", "Port-Gentil", "Franceville", "Oyem", "Moanda", "Mouila", "Tchibanga", "Koulamoutou"}},
	{"Tchad", "+235", []string{"N'Djamena", "Moundou", "Sarh", "Abéché", "Doba", "Ati", "Lai", "Kelo"}},
	{"RCA", "+236", []string{"Bangui", "Bimbo", "Berbérati", "Bossangoa", "Bambari", "Kaga-Bandoro", "Carnot", "Sibut"}},
	{"Tunisie", "+216", []string{"Tunis", "Sfax", "Sousse", "Kairouan", "Gabès", "Bizerte", "Ariana", "Gafsa"}},
	{"Maroc", "+212", []string{"Casablanca", "Rabat", "Marrakech", "Fès", "Tanger", "Meknès", "Agadir", "Oujda"}},
	{"Algérie", "+213", []string{"Alger", "Oran", "Constantine", "Annaba", "Batna", "Blida", "Sétif", "Djelfa"}},
	{"France", "+33", []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nice", "Nantes", "Strasbourg", "Montpellier"}},
	{"Belgique", "+32", []string{"Bruxelles", "Anvers", "Gand", "Charleroi", "Liège", "Bruges", "Namur", "Louvain"}},
}

var byName = func() map[string]country {
	m := make(map[string]country, len(countries))
	for _, c := range countries {
		m[c.name] = c
	}
	return m
}()

// Countries returns the selectable countries in display order, ending with
// Other.
func Countries() []string {
	out := make([]string, 0, len(countries)+1)
	for _, c := range countries {
		out = append(out, c.name)
	}
	return append(out, Other)
}

// PhonePrefix returns the dialing code for a country, or UnknownPrefix.
func PhonePrefix(country string) string {
	if c, ok := byName[country]; ok {
		return c.prefix
	}
	return UnknownPrefix
}

// PhonePlaceholder returns the phone input placeholder for a country.
func PhonePlaceholder(country string) string {
	switch country {
	case Domestic:
		return DomesticPhonePlaceholder
	case Other:
		return OtherPhonePlaceholder
	default:
		return ForeignPhonePlaceholder
	}
}

// Cities returns the static city list for a country, or nil when the city
// must be typed freely.
func Cities(country string) []string {
	c, ok := byName[country]
	if !ok {
		return nil
	}
	out := make([]string, len(c.cities))
	copy(out, c.cities)
	return out
}
