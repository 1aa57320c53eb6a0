/*
vendor.go - Lead vendor reference tables

Static lookup data for lead vendors: display names, per-call buy rates,
and cost-per-lead figures for the vendors bought on a CPL basis. Keys are
normalized with NormalizeVendorKey before lookup so "Fran Calls",
"fran_calls", and "FRAN/CALLS" all resolve to the same vendor.
*/
package commission

import "strings"

// VendorNames maps normalized vendor keys to display names.
var VendorNames = map[string]string{
	"general":           "GENERAL",
	"inbound":           "INBOUND",
	"sms":               "SMS",
	"advancegro":        "Advance gro",
	"axad":              "AXAD",
	"googlecalls":       "GOOGLE CALLS",
	"buffercall":        "Aetna",
	"ancletadvising":    "Anclet advising",
	"blmcalls":          "BLM CALLS",
	"loopcalls":         "LOOP CALLS",
	"nobufferaca":       "NO BUFFER ACA",
	"raycalls":          "RAY CALLS",
	"nomiaca":           "Nomi ACA",
	"hcsmedia":          "HCS MEDIA",
	"francalls":         "Fran Calls",
	"acaking":           "ACA KING",
	"ptacacalls":        "PT ACA CALLS",
	"hcscaa":            "HCS CAA",
	"slavaaca":          "Slava ACA",
	"slavaaca2":         "Slava ACA 2",
	"francallssupp":     "Fran Calls SUPP",
	"derekinhousefb":    "DEREK INHOUSE FB",
	"allicalladdoncall": "ALI CALL ADDON CALL",
	"joshaca":           "JOSH ACA",
	"hcs1p":             "HCS1p",
	"hcsmediacpl":       "HCS MEDIA CPL",
}

// VendorRates maps normalized vendor keys to per-call buy rates, dollars.
var VendorRates = map[string]int{
	"francalls":  75,
	"hcsmedia":   75,
	"buffercall": 80,
	"acaking":    75,
	"raycalls":   75,
}

// VendorCPLs maps normalized vendor keys to cost-per-lead, dollars.
var VendorCPLs = map[string]int{
	"acaking":     35,
	"joshaca":     30,
	"francalls":   25,
	"hcsmediacpl": 25,
}

// NormalizeVendorKey lowercases and strips spaces, slashes, and
// underscores so statement spellings collapse to one key.
func NormalizeVendorKey(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '_':
			return -1
		}
		return r
	}, s)
}
