package trust

import "sort"

// Attribute is a geolocation field the rule engine recognizes. The set of valid
// attributes is closed; rules referencing anything else are rejected at build or
// load time rather than at scoring time.
type Attribute string

// The full set of attributes a GeoResolver can populate.
const (
	AttrType          Attribute = "type"
	AttrCountry       Attribute = "country"
	AttrCountryCode   Attribute = "country_code"
	AttrCity          Attribute = "city"
	AttrContinent     Attribute = "continent"
	AttrContinentCode Attribute = "continent_code"
	AttrRegion        Attribute = "region"
	AttrRegionCode    Attribute = "region_code"
	AttrLatitude      Attribute = "latitude"
	AttrLongitude     Attribute = "longitude"
	AttrIsEU          Attribute = "is_eu"
	AttrPostal        Attribute = "postal"
	AttrCallingCode   Attribute = "calling_code"
	AttrCapital       Attribute = "capital"
	AttrBorders       Attribute = "borders"
	AttrCountryFlag   Attribute = "country_flag"
	AttrASN           Attribute = "asn"
	AttrOrg           Attribute = "org"
	AttrISP           Attribute = "isp"
	AttrDomain        Attribute = "domain"
	AttrTimezoneID    Attribute = "timezone_id"
	AttrTimezoneAbbr  Attribute = "timezone_abbr"
	AttrTimezoneIsDST Attribute = "timezone_is_dst"
	AttrTimezoneOff   Attribute = "timezone_offset"
	AttrTimezoneUTC   Attribute = "timezone_utc"
	AttrCurrentTime   Attribute = "current_time"
)

var validAttributes = map[Attribute]bool{
	AttrType:          true,
	AttrCountry:       true,
	AttrCountryCode:   true,
	AttrCity:          true,
	AttrContinent:     true,
	AttrContinentCode: true,
	AttrRegion:        true,
	AttrRegionCode:    true,
	AttrLatitude:      true,
	AttrLongitude:     true,
	AttrIsEU:          true,
	AttrPostal:        true,
	AttrCallingCode:   true,
	AttrCapital:       true,
	AttrBorders:       true,
	AttrCountryFlag:   true,
	AttrASN:           true,
	AttrOrg:           true,
	AttrISP:           true,
	AttrDomain:        true,
	AttrTimezoneID:    true,
	AttrTimezoneAbbr:  true,
	AttrTimezoneIsDST: true,
	AttrTimezoneOff:   true,
	AttrTimezoneUTC:   true,
	AttrCurrentTime:   true,
}

// IsValidAttribute reports whether name is a member of the attribute schema.
func IsValidAttribute(name string) bool {
	return validAttributes[Attribute(name)]
}

// ParseAttribute converts a raw field name into a typed Attribute. Resolvers use
// this to drop response fields that are outside the schema.
func ParseAttribute(name string) (Attribute, bool) {
	a := Attribute(name)
	return a, validAttributes[a]
}

// Attributes returns the schema as a sorted slice.
func Attributes() []Attribute {
	aa := make([]Attribute, 0, len(validAttributes))
	for a := range validAttributes {
		aa = append(aa, a)
	}
	sort.Slice(aa, func(i, j int) bool { return aa[i] < aa[j] })
	return aa
}
