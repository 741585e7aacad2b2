package georesolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog"

	"iptrust/trust"
)

// MaxMindResolver resolves IPs against local MaxMind GeoLite2/GeoIP2 databases.
// The ASN database is optional; without it the asn/org attributes stay absent.
type MaxMindResolver struct {
	logger zerolog.Logger
	city   *geoip2.Reader
	asn    *geoip2.Reader
}

// NewMaxMindResolver opens the City database at cityDBPath and, when asnDBPath
// is non-empty, the ASN database.
func NewMaxMindResolver(logger zerolog.Logger, cityDBPath string, asnDBPath string) (*MaxMindResolver, error) {
	city, err := geoip2.Open(cityDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening MaxMind city database %s: %v", cityDBPath, err)
	}

	r := &MaxMindResolver{logger: logger, city: city}
	if asnDBPath != "" {
		r.asn, err = geoip2.Open(asnDBPath)
		if err != nil {
			city.Close()
			return nil, fmt.Errorf("opening MaxMind ASN database %s: %v", asnDBPath, err)
		}
	}

	return r, nil
}

// Close releases the underlying database readers.
func (r *MaxMindResolver) Close() error {
	err := r.city.Close()
	if r.asn != nil {
		if asnErr := r.asn.Close(); err == nil {
			err = asnErr
		}
	}
	return err
}

// Resolve looks up the geolocation attributes for ip.
func (r *MaxMindResolver) Resolve(ctx context.Context, ip string) (trust.AttributeBag, error) {
	if err := ctx.Err(); err != nil {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: err}
	}

	addr := net.ParseIP(ip)
	if addr == nil {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionNoData, Err: errors.New("not a valid IP address")}
	}

	rec, err := r.city.City(addr)
	if err != nil {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: err}
	}

	// The reader returns an empty record rather than an error for IPs outside
	// the database.
	if rec.Country.IsoCode == "" && rec.City.GeoNameID == 0 && rec.Continent.Code == "" {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionNoData, Err: errors.New("no geolocation record")}
	}

	bag := trust.AttributeBag{}
	put(bag, trust.AttrCountry, rec.Country.Names["en"])
	put(bag, trust.AttrCountryCode, rec.Country.IsoCode)
	put(bag, trust.AttrCity, rec.City.Names["en"])
	put(bag, trust.AttrContinent, rec.Continent.Names["en"])
	put(bag, trust.AttrContinentCode, rec.Continent.Code)
	if len(rec.Subdivisions) > 0 {
		put(bag, trust.AttrRegion, rec.Subdivisions[0].Names["en"])
		put(bag, trust.AttrRegionCode, rec.Subdivisions[0].IsoCode)
	}
	bag[trust.AttrLatitude] = strconv.FormatFloat(rec.Location.Latitude, 'f', -1, 64)
	bag[trust.AttrLongitude] = strconv.FormatFloat(rec.Location.Longitude, 'f', -1, 64)
	bag[trust.AttrIsEU] = strconv.FormatBool(rec.Country.IsInEuropeanUnion)
	put(bag, trust.AttrPostal, rec.Postal.Code)
	put(bag, trust.AttrTimezoneID, rec.Location.TimeZone)

	if r.asn != nil {
		asnRec, asnErr := r.asn.ASN(addr)
		if asnErr != nil {
			r.logger.Warn().Err(asnErr).Str("ip", ip).Msg("MaxMind ASN lookup failed")
		} else {
			if asnRec.AutonomousSystemNumber != 0 {
				bag[trust.AttrASN] = strconv.FormatUint(uint64(asnRec.AutonomousSystemNumber), 10)
			}
			put(bag, trust.AttrOrg, asnRec.AutonomousSystemOrganization)
		}
	}

	return bag, nil
}
