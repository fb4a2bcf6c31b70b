package main

// seedRegion is a region with the cities deliveries are addressed to.
type seedRegion struct {
	Name   string
	Code   string
	Cities []string
}

var regions = []seedRegion{
	{
		Name: "Abidjan", Code: "ABI",
		Cities: []string{
			"Abidjan", "Cocody", "Marcory", "Treichville", "Adjame", "Plateau", "Koumassi",
			"Attecoube", "Yopougon", "Abobo", "Anyama", "Songon", "Port-Bouet", "Dabou",
		},
	},
	{
		Name: "Bafing", Code: "BAFIN",
		Cities: []string{
			"Touba", "Koro",
		},
	},
	{
		Name: "Bagoué", Code: "BAGOU",
		Cities: []string{
			"Boundiali", "Kouto",
		},
	},
	{
		Name: "Bas-Sassandra", Code: "BAS",
		Cities: []string{
			"San-Pédro", "Sassandra", "Soubré", "Buyo", "Tabou",
		},
	},
	{
		Name: "Cavally", Code: "CAV",
		Cities: []string{
			"Guiglo", "Toulepleu", "Bloléquin", "Taï", "Zagné",
		},
	},
	{
		Name: "Comoé", Code: "COM",
		Cities: []string{
			"Abengourou", "Agnibilékrou", "Béttié", "Maféré", "Zaranou", "Bocanda",
		},
	},
	{
		Name: "Gboklé", Code: "GBOK",
		Cities: []string{
			"Grand-Bassam", "Bonoua", "Ono", "Noé",
		},
	},
	{
		Name: "Gbêkê", Code: "GBEKE",
		Cities: []string{
			"Bouaké", "Sakassou", "Botro", "Kouassi-Kouassikro", "Béoumi",
		},
	},
	{
		Name: "Gbôklé", Code: "GBOKLE",
		Cities: []string{
			"Abengourou", "Bécédi-Brignan", "Grand-Morié",
		},
	},
	{
		Name: "Guémon", Code: "GUEM",
		Cities: []string{
			"Man", "Danané", "Sipilou", "Kouibly", "Fengolo", "Gbangbégouiné", "Béoué", "Tai",
		},
	},
	{
		Name: "Hambol", Code: "HAM",
		Cities: []string{
			"Katiola", "Niakara", "Ferkessédougou", "Kobénan",
		},
	},
	{
		Name: "Haut-Sassandra", Code: "HSAS",
		Cities: []string{
			"Daloa", "Vavoua", "Haut-Sassandra", "Issia", "Gueyo",
		},
	},
	{
		Name: "Iffou", Code: "IFF",
		Cities: []string{
			"Daoukro", "M'Bahiakro", "Ananda", "Azaguie",
		},
	},
	{
		Name: "Indénié-Djuablin", Code: "IND",
		Cities: []string{
			"Abengourou", "Ano-Sud", "Kossou", "Arrah",
		},
	},
	{
		Name: "Kabadougou", Code: "KAB",
		Cities: []string{
			"Odienné", "Samatiguila", "Mankono",
		},
	},
	{
		Name: "Lagunes", Code: "LAG",
		Cities: []string{
			"Dabou", "Jacqueville", "Tiassalé", "Alépé", "Agboville", "Grand-Bassam",
		},
	},
	{
		Name: "Lacs", Code: "LAC",
		Cities: []string{
			"Dimbokro", "Bocanda", "Yamoussoukro", "Tiébissou", "Toumodi",
		},
	},
	{
		Name: "Marahoué", Code: "MAR",
		Cities: []string{
			"Bouaflé", "Sinfra", "Zuéénoula",
		},
	},
	{
		Name: "Mé", Code: "ME",
		Cities: []string{
			"Adzopé", "Akébé", "Alépé", "Attobrou", "Bocanda",
		},
	},
	{
		Name: "Moronou", Code: "MOR",
		Cities: []string{
			"Bongouanou", "Arrah", "M'Bahiakro",
		},
	},
	{
		Name: "Nawa", Code: "NAW",
		Cities: []string{
			"Soubré", "Buyo", "Guéyo", "Méagui",
		},
	},
	{
		Name: "N'Zi", Code: "N'ZI",
		Cities: []string{
			"Dimbokro", "Kouassi-Kouassikro", "Prikro",
		},
	},
	{
		Name: "Poro", Code: "POR",
		Cities: []string{
			"Korhogo", "Ferkessédougou", "Dikodougou", "Niakara",
		},
	},
	{
		Name: "San-Pédro", Code: "SANP",
		Cities: []string{
			"San-Pédro", "Tabou", "Sassandra",
		},
	},
	{
		Name: "Sud-Comoé", Code: "SUDC",
		Cities: []string{
			"Abengourou", "Ano-Sud", "Bettie", "Agnibilékrou",
		},
	},
	{
		Name: "Sud-Tchologo", Code: "SUDT",
		Cities: []string{
			"Ferkessédougou", "Kong", "Napié",
		},
	},
	{
		Name: "Tchologo", Code: "TCHOL",
		Cities: []string{
			"Ferkessédougou", "Ouangolodougou", "Napie",
		},
	},
	{
		Name: "Tonkpi", Code: "TON",
		Cities: []string{
			"Man", "Danané", "Sipilou", "Zouan-Hounien",
		},
	},
	{
		Name: "Worodougou", Code: "WOR",
		Cities: []string{
			"Séguéla", "Mankono", "Kani",
		},
	},
	{
		Name: "Yamoussoukro", Code: "YAM",
		Cities: []string{
			"Yamoussoukro", "Attiégouakro", "Lolobo",
		},
	},
	{
		Name: "Yopougon", Code: "YOP",
		Cities: []string{
			"Yopougon", "Anyama", "Songon",
		},
	},
	{
		Name: "Zanzan", Code: "ZAN",
		Cities: []string{
			"Bondoukou", "Tanda", "Sakassou", "Bouna",
		},
	},
}
