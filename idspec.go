package traffic

import(
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/adsb"
)

// An IdSpec names one flight segment: an aircraft (or, failing that, a callsign) at a moment
// during the segment.
type IdSpec struct {
	IcaoId    adsb.IcaoId
	Callsign  string
	time.Time // embed
}

var icaoIdRegexp = regexp.MustCompile("^[A-F0-9]{6}$")

// The string form is "A23A23@1412312312"; the time is whole epoch seconds.
func (idspec IdSpec)String() string {
	if idspec.IcaoId != "" {
		return fmt.Sprintf("%s@%d", idspec.IcaoId, idspec.Time.Unix())
	} else if idspec.Callsign != "" {
		return fmt.Sprintf("%s@%d", idspec.Callsign, idspec.Time.Unix())
	}
	return "BadIdSpec@Provided"
}

// Parse a string into a new spec
//     A23A23@1412312312  (IcaoId at an epoch time)
//     UAL123@1412312312  (callsign at an epoch time)
func NewIdSpec(idspec string) (IdSpec,error) {
	bits := strings.Split(idspec, "@")
	if len(bits) != 2 {
		return IdSpec{}, fmt.Errorf("IdSpec '%s' did not match <aircraft>@<epoch>", idspec)
	}

	epochInt,err := strconv.ParseInt(bits[1], 10, 64)
	if err != nil {
		return IdSpec{}, fmt.Errorf("IdSpec '%s' did not have parseable int after @: %v", idspec, err)
	}
	t := time.Unix(epochInt, 0).UTC()

	if icaoIdRegexp.MatchString(strings.ToUpper(bits[0])) {
		return IdSpec{IcaoId: adsb.IcaoId(strings.ToUpper(bits[0])), Time:t}, nil
	}
	return IdSpec{Callsign: bits[0], Time:t}, nil
}

// IdSpec is stamped at the midpoint of the flight, to the second.
func (f *Flight)IdSpec() IdSpec {
	mid := f.Start().Add(f.Duration() / 2)
	return IdSpec{
		IcaoId: f.IcaoId(),
		Callsign: f.Callsign(),
		Time: mid.Truncate(time.Second),
	}
}

// Matches is true if the flight is for the spec's aircraft (or callsign), and is in the air at
// the spec's time.
func (f *Flight)Matches(idspec IdSpec) bool {
	if f.Len() == 0 { return false }
	if idspec.IcaoId != "" && !strings.EqualFold(string(idspec.IcaoId), string(f.IcaoId())) {
		return false
	}
	if idspec.IcaoId == "" && !CallsignStringsEqual(idspec.Callsign, f.Callsign()) {
		return false
	}
	s,e := f.Start().Truncate(time.Second), f.Stop()
	return !idspec.Time.Before(s) && !idspec.Time.After(e)
}
