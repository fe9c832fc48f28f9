package mapper

// countryNames maps ISO 3166-1 alpha-2 origin-country codes to the English
// full names used as library tags. These must stay aligned with the names
// the library filters match on, so the table is fixed rather than derived
// from a locale database. Unmapped codes are dropped.
var countryNames = map[string]string{
	"CN": "China",
	"HK": "Hong Kong",
	"TW": "Taiwan",
	"US": "United States",
	"JP": "Japan",
	"KR": "South Korea",
	"TH": "Thailand",
	"IN": "India",
	"GB": "United Kingdom",
	"FR": "France",
	"DE": "Germany",
	"RU": "Russia",
	"CA": "Canada",
	"AU": "Australia",
	"IT": "Italy",
	"ES": "Spain",
	"BR": "Brazil",
	"MX": "Mexico",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"NL": "Netherlands",
	"PL": "Poland",
	"TR": "Turkey",
	"ID": "Indonesia",
	"PH": "Philippines",
	"SG": "Singapore",
	"MY": "Malaysia",
	"VN": "Vietnam",
	"ZA": "South Africa",
	"NZ": "New Zealand",
	"IE": "Ireland",
	"BE": "Belgium",
	"CH": "Switzerland",
	"AT": "Austria",
	"FI": "Finland",
	"PT": "Portugal",
	"GR": "Greece",
	"IL": "Israel",
	"AR": "Argentina",
	"CL": "Chile",
	"CO": "Colombia",
	"UA": "Ukraine",
	"CZ": "Czech Republic",
	"HU": "Hungary",
	"RO": "Romania",
	"AF": "Afghanistan",
	"AL": "Albania",
	"DZ": "Algeria",
	"AD": "Andorra",
	"AO": "Angola",
	"AG": "Antigua and Barbuda",
	"AM": "Armenia",
	"AZ": "Azerbaijan",
	"BS": "Bahamas",
	"BH": "Bahrain",
	"BD": "Bangladesh",
	"BB": "Barbados",
	"BY": "Belarus",
	"BZ": "Belize",
	"BJ": "Benin",
	"BT": "Bhutan",
	"BO": "Bolivia",
	"BA": "Bosnia and Herzegovina",
	"BW": "Botswana",
	"BN": "Brunei Darussalam",
	"BG": "Bulgaria",
	"BF": "Burkina Faso",
	"BI": "Burundi",
	"KH": "Cambodia",
	"CM": "Cameroon",
	"CV": "Cape Verde",
	"CF": "Central African Republic",
	"TD": "Chad",
	"KM": "Comoros",
	"CG": "Congo",
	"CD": "Democratic Republic of the Congo",
	"CR": "Costa Rica",
	"CI": "Cote D'Ivoire",
	"HR": "Croatia",
	"CU": "Cuba",
	"CY": "Cyprus",
	"DJ": "Djibouti",
	"DM": "Dominica",
	"DO": "Dominican Republic",
	"EC": "Ecuador",
	"EG": "Egypt",
	"SV": "El Salvador",
	"GQ": "Equatorial Guinea",
	"ER": "Eritrea",
	"EE": "Estonia",
	"ET": "Ethiopia",
	"FJ": "Fiji",
	"GA": "Gabon",
	"GM": "Gambia",
	"GE": "Georgia",
	"GH": "Ghana",
	"GD": "Grenada",
	"GT": "Guatemala",
	"GN": "Guinea",
	"GW": "Guinea-Bissau",
	"GY": "Guyana",
	"HT": "Haiti",
	"HN": "Honduras",
	"IS": "Iceland",
	"IR": "Iran",
	"IQ": "Iraq",
	"JM": "Jamaica",
	"JO": "Jordan",
	"KZ": "Kazakhstan",
	"KE": "Kenya",
	"KI": "Kiribati",
	"KP": "North Korea",
	"KW": "Kuwait",
	"KG": "Kyrgyzstan",
	"LA": "Laos",
	"LV": "Latvia",
	"LB": "Lebanon",
	"LS": "Lesotho",
	"LR": "Liberia",
	"LY": "Libya",
	"LI": "Liechtenstein",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"MK": "Macedonia",
	"MG": "Madagascar",
	"MW": "Malawi",
	"MV": "Maldives",
	"ML": "Mali",
	"MT": "Malta",
	"MH": "Marshall Islands",
	"MR": "Mauritania",
	"MU": "Mauritius",
	"FM": "Micronesia",
	"MD": "Moldova",
	"MC": "Monaco",
	"MN": "Mongolia",
	"ME": "Montenegro",
	"MA": "Morocco",
	"MZ": "Mozambique",
	"MM": "Myanmar",
	"NA": "Namibia",
	"NR": "Nauru",
	"NP": "Nepal",
	"NI": "Nicaragua",
	"NE": "Niger",
	"NG": "Nigeria",
	"OM": "Oman",
	"PK": "Pakistan",
	"PW": "Palau",
	"PA": "Panama",
	"PG": "Papua New Guinea",
	"PY": "Paraguay",
	"PE": "Peru",
	"QA": "Qatar",
	"RW": "Rwanda",
	"KN": "Saint Kitts and Nevis",
	"LC": "Saint Lucia",
	"VC": "Saint Vincent and the Grenadines",
	"WS": "Samoa",
	"SM": "San Marino",
	"ST": "Sao Tome and Principe",
	"SA": "Saudi Arabia",
	"SN": "Senegal",
	"RS": "Serbia",
	"SC": "Seychelles",
	"SL": "Sierra Leone",
	"SK": "Slovakia",
	"SI": "Slovenia",
	"SB": "Solomon Islands",
	"SO": "Somalia",
	"LK": "Sri Lanka",
	"SD": "Sudan",
	"SR": "Suriname",
	"SZ": "Swaziland",
	"SY": "Syria",
	"TJ": "Tajikistan",
	"TZ": "Tanzania",
	"TL": "Timor-Leste",
	"TG": "Togo",
	"TO": "Tonga",
	"TT": "Trinidad and Tobago",
	"TN": "Tunisia",
	"TM": "Turkmenistan",
	"TV": "Tuvalu",
	"UG": "Uganda",
	"AE": "United Arab Emirates",
	"UY": "Uruguay",
	"UZ": "Uzbekistan",
	"VU": "Vanuatu",
	"VE": "Venezuela",
	"YE": "Yemen",
	"ZM": "Zambia",
	"ZW": "Zimbabwe",
}

// countryTags converts origin-country codes to English full-name tags,
// preserving input order and dropping codes the table does not know.
func countryTags(codes []string) []string {
	var tags []string
	for _, code := range codes {
		if name, ok := countryNames[code]; ok {
			tags = append(tags, name)
		}
	}
	return tags
}
