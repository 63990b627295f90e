package traffic

import(
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/* Callsigns, as they show up in position reports

1. Airlines mostly use the ICAO flight number: SWA3848
2. Private aircraft often use their registration: N839AL
3. Some airlines use a bare flight number: 1106 (Frontier), 948 (Southwest)
4. Null identifiers: "00000000", "????????", or an empty (often space-padded) string
5. TRACON-derived data may add a suffix letter: SKW750R

*/

type CallsignType int
const(
	Undefined CallsignType = iota
	JunkCallsign
	Registration
	IcaoFlightNumber
	BareFlightNumber
)

func (ct CallsignType)String() string {
	switch ct {
	case JunkCallsign:     return "junk"
	case Registration:     return "registration"
	case IcaoFlightNumber: return "icao"
	case BareFlightNumber: return "bare"
	}
	return "undefined"
}

type Callsign struct {
	Raw          string

	CallsignType
	Registration string
	IcaoPrefix   string // the carrier
	ATCSuffix    string
	Number       int64
}

var(
	// N-numbers: one to five chars after the N, starting with a non-zero digit, no I or O
	registrationRegexp = regexp.MustCompile("^(N[1-9][0-9A-HJ-NP-Z]{0,4})$")
	icaoRegexp         = regexp.MustCompile("^([A-Z]{3})([0-9]{1,4})([A-Z]?)$")
	bareRegexp         = regexp.MustCompile("^([0-9]{2,4})$")
)

// String normalizes ICAO flight numbers (drops leading zeros and any ATC suffix).
func (c Callsign)String() string {
	switch c.CallsignType {
	case IcaoFlightNumber:
		return fmt.Sprintf("%s%d", c.IcaoPrefix, c.Number)
	default:
		return c.Raw
	}
}

func (c *Callsign)MaybeAddPrefix(prefix string) {
	if c.CallsignType == BareFlightNumber {
		c.IcaoPrefix = prefix
		c.CallsignType = IcaoFlightNumber
	}
}

func (c1 Callsign)Equal(c2 Callsign) bool { return c1.String() == c2.String() }

func CallsignStringsEqual(c1,c2 string) bool {
	return ParseCallsign(c1).Equal(ParseCallsign(c2))
}

// ParseCallsign classifies a callsign. Surrounding whitespace (ADS-B pads to eight chars) is
// ignored.
func ParseCallsign(callsign string) (ret Callsign) {
	callsign = strings.TrimSpace(callsign)
	ret.Raw = callsign

	if m := registrationRegexp.FindStringSubmatch(callsign); m != nil {
		ret.Registration = callsign
		ret.CallsignType = Registration
		return
	}

	if m := icaoRegexp.FindStringSubmatch(callsign); m != nil {
		ret.Number,_ = strconv.ParseInt(m[2], 10, 64)
		ret.IcaoPrefix = m[1]
		ret.ATCSuffix = m[3]
		ret.CallsignType = IcaoFlightNumber
		return
	}

	if m := bareRegexp.FindStringSubmatch(callsign); m != nil {
		ret.Number,_ = strconv.ParseInt(m[1], 10, 64)
		ret.CallsignType = BareFlightNumber
		return
	}

	ret.CallsignType = JunkCallsign
	return
}

// Carrier is the ICAO airline code from the flight's callsign; blank if it doesn't have one.
func (f *Flight)Carrier() string {
	return ParseCallsign(f.Callsign()).IcaoPrefix
}
