package georesolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/sync/singleflight"

	"iptrust/trust"
)

// DefaultBaseURL is the public ipwho.is endpoint.
const DefaultBaseURL = "http://ipwho.is"

// DefaultIP is a known-good probe address for examples and manual testing.
const DefaultIP = "136.233.9.98"

// IPWhoisClient resolves IPs through the ipwho.is HTTP API. Concurrent lookups
// for the same IP are collapsed into a single request; the resulting attribute
// bag is read-only and safe to share.
type IPWhoisClient struct {
	logger  zerolog.Logger
	baseURL string
	client  *http.Client
	group   singleflight.Group
}

// NewIPWhoisClient creates an ipwho.is resolver. An empty baseURL selects the
// public endpoint. The timeout is a transport backstop; per-call deadlines come
// from the caller's context.
func NewIPWhoisClient(logger zerolog.Logger, baseURL string, timeout time.Duration) *IPWhoisClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &IPWhoisClient{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve fetches the geolocation attributes for ip.
func (c *IPWhoisClient) Resolve(ctx context.Context, ip string) (trust.AttributeBag, error) {
	v, err, _ := c.group.Do(ip, func() (interface{}, error) {
		return c.lookup(ctx, ip)
	})
	if err != nil {
		return nil, err
	}
	return v.(trust.AttributeBag), nil
}

func (c *IPWhoisClient) lookup(ctx context.Context, ip string) (trust.AttributeBag, error) {
	resp, err := ctxhttp.Get(ctx, c.client, c.baseURL+"/"+url.PathEscape(ip))
	if err != nil {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: errors.New("rate limited (429)")}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)}
	}

	var body ipWhoisResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionUnavailable, Err: fmt.Errorf("decoding response: %v", err)}
	}

	// ipwho.is reports unknown or unsupported IPs with success=false and an
	// HTTP 200.
	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "no data for IP"
		}
		return nil, &trust.ResolutionError{IP: ip, Kind: trust.ResolutionNoData, Err: errors.New(msg)}
	}

	c.logger.Debug().Str("ip", ip).Str("country", body.Country).Msg("Resolved IP through ipwho.is")
	return body.toBag(), nil
}

// ipWhoisResponse mirrors the ipwho.is API response.
type ipWhoisResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	Type          string  `json:"type"`
	Country       string  `json:"country"`
	CountryCode   string  `json:"country_code"`
	City          string  `json:"city"`
	Continent     string  `json:"continent"`
	ContinentCode string  `json:"continent_code"`
	Region        string  `json:"region"`
	RegionCode    string  `json:"region_code"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	IsEU          bool    `json:"is_eu"`
	Postal        string  `json:"postal"`
	CallingCode   string  `json:"calling_code"`
	Capital       string  `json:"capital"`
	Borders       string  `json:"borders"`
	Flag          struct {
		Emoji string `json:"emoji"`
	} `json:"flag"`
	Connection struct {
		ASN    int    `json:"asn"`
		Org    string `json:"org"`
		ISP    string `json:"isp"`
		Domain string `json:"domain"`
	} `json:"connection"`
	Timezone struct {
		ID          string `json:"id"`
		Abbr        string `json:"abbr"`
		IsDST       bool   `json:"is_dst"`
		Offset      int    `json:"offset"`
		UTC         string `json:"utc"`
		CurrentTime string `json:"current_time"`
	} `json:"timezone"`
}

func (r *ipWhoisResponse) toBag() trust.AttributeBag {
	bag := trust.AttributeBag{}
	put(bag, trust.AttrType, r.Type)
	put(bag, trust.AttrCountry, r.Country)
	put(bag, trust.AttrCountryCode, r.CountryCode)
	put(bag, trust.AttrCity, r.City)
	put(bag, trust.AttrContinent, r.Continent)
	put(bag, trust.AttrContinentCode, r.ContinentCode)
	put(bag, trust.AttrRegion, r.Region)
	put(bag, trust.AttrRegionCode, r.RegionCode)
	bag[trust.AttrLatitude] = strconv.FormatFloat(r.Latitude, 'f', -1, 64)
	bag[trust.AttrLongitude] = strconv.FormatFloat(r.Longitude, 'f', -1, 64)
	bag[trust.AttrIsEU] = strconv.FormatBool(r.IsEU)
	put(bag, trust.AttrPostal, r.Postal)
	put(bag, trust.AttrCallingCode, r.CallingCode)
	put(bag, trust.AttrCapital, r.Capital)
	put(bag, trust.AttrBorders, r.Borders)
	put(bag, trust.AttrCountryFlag, r.Flag.Emoji)
	if r.Connection.ASN != 0 {
		bag[trust.AttrASN] = strconv.Itoa(r.Connection.ASN)
	}
	put(bag, trust.AttrOrg, r.Connection.Org)
	put(bag, trust.AttrISP, r.Connection.ISP)
	put(bag, trust.AttrDomain, r.Connection.Domain)
	put(bag, trust.AttrTimezoneID, r.Timezone.ID)
	put(bag, trust.AttrTimezoneAbbr, r.Timezone.Abbr)
	bag[trust.AttrTimezoneIsDST] = strconv.FormatBool(r.Timezone.IsDST)
	bag[trust.AttrTimezoneOff] = strconv.Itoa(r.Timezone.Offset)
	put(bag, trust.AttrTimezoneUTC, r.Timezone.UTC)
	put(bag, trust.AttrCurrentTime, r.Timezone.CurrentTime)
	return bag
}

// put stores a string field, skipping empties so that wildcard rules only match
// attributes the resolver actually returned.
func put(bag trust.AttributeBag, a trust.Attribute, v string) {
	if v != "" {
		bag[a] = v
	}
}
