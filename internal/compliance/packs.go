package compliance

var countryOrder = []string{"AU", "NZ", "GB", "US", "SG"}

var packs = map[string]*Pack{
	"AU": {
		Country: "AU",
		Name:    "Australia",
		EntityTypes: entityTypes(
			EntityType{Code: "PTY", Name: "Proprietary Limited Company"},
			EntityType{Code: "LTD", Name: "Public Company"},
			EntityType{Code: "NL", Name: "No Liability Company"},
			EntityType{Code: "TRUST", Name: "Trust"},
			EntityType{Code: "UNIT_TRUST", Name: "Unit Trust"},
			EntityType{Code: "SMSF", Name: "Self-Managed Superannuation Fund"},
			EntityType{Code: "PARTNERSHIP", Name: "Partnership"},
			EntityType{Code: "ASSOCIATION", Name: "Incorporated Association"},
		),
		IdentifierTypes: identifierTypes(
			IdentifierType{Code: "ABN", Name: "Australian Business Number", Format: FormatRule{Groups: []int{2, 3, 3, 3}, Separator: " "}},
			IdentifierType{Code: "ACN", Name: "Australian Company Number", Format: FormatRule{Groups: []int{3, 3, 3}, Separator: " "}},
			IdentifierType{Code: "ARBN", Name: "Australian Registered Body Number", Format: FormatRule{Groups: []int{3, 3, 3}, Separator: " "}},
			IdentifierType{Code: "TFN", Name: "Tax File Number", Format: FormatRule{Groups: []int{3, 3, 3}, Separator: " "}},
		),
	},
	"NZ": {
		Country: "NZ",
		Name:    "New Zealand",
		EntityTypes: entityTypes(
			EntityType{Code: "LTD", Name: "Limited Company"},
			EntityType{Code: "TRUST", Name: "Trust"},
			EntityType{Code: "PARTNERSHIP", Name: "Partnership"},
		),
		IdentifierTypes: identifierTypes(
			IdentifierType{Code: "NZBN", Name: "New Zealand Business Number"},
			IdentifierType{Code: "NZCN", Name: "Company Number"},
			IdentifierType{Code: "IRD", Name: "IRD Number", Format: FormatRule{Groups: []int{3, 3, 3}, Separator: "-"}},
		),
	},
	"GB": {
		Country: "GB",
		Name:    "United Kingdom",
		EntityTypes: entityTypes(
			EntityType{Code: "LTD", Name: "Private Limited Company"},
			EntityType{Code: "PLC", Name: "Public Limited Company"},
			EntityType{Code: "LLP", Name: "Limited Liability Partnership"},
		),
		IdentifierTypes: identifierTypes(
			IdentifierType{Code: "CRN", Name: "Company Registration Number"},
			IdentifierType{Code: "UTR", Name: "Unique Taxpayer Reference", Format: FormatRule{Groups: []int{5, 5}, Separator: " "}},
		),
	},
	"US": {
		Country: "US",
		Name:    "United States",
		EntityTypes: entityTypes(
			EntityType{Code: "CORP", Name: "Corporation"},
			EntityType{Code: "LLC", Name: "Limited Liability Company"},
			EntityType{Code: "LP", Name: "Limited Partnership"},
		),
		IdentifierTypes: identifierTypes(
			IdentifierType{Code: "EIN", Name: "Employer Identification Number", Format: FormatRule{Groups: []int{2, 7}, Separator: "-"}},
		),
	},
	"SG": {
		Country: "SG",
		Name:    "Singapore",
		EntityTypes: entityTypes(
			EntityType{Code: "PTE_LTD", Name: "Private Limited Company"},
			EntityType{Code: "LTD", Name: "Public Company"},
		),
		IdentifierTypes: identifierTypes(
			IdentifierType{Code: "UEN", Name: "Unique Entity Number"},
		),
	},
}

func entityTypes(types ...EntityType) map[string]EntityType {
	m := make(map[string]EntityType, len(types))
	for _, t := range types {
		m[t.Code] = t
	}
	return m
}

func identifierTypes(types ...IdentifierType) map[string]IdentifierType {
	m := make(map[string]IdentifierType, len(types))
	for _, t := range types {
		m[t.Code] = t
	}
	return m
}
