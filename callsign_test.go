package traffic

// go test -v github.com/skypies/traffic

import "testing"

type CallsignTest struct {
	Raw        string
	Normalized string
	CallsignType
	Carrier    string
}

var callsignTests = []CallsignTest{
	{"",          "",         JunkCallsign,     ""},
	{"-.-.-.-.",  "-.-.-.-.", JunkCallsign,     ""},
	{"N761QA",    "N761QA",   Registration,     ""},
	{"UAL100",    "UAL100",   IcaoFlightNumber, "UAL"},
	{"987",       "987",      BareFlightNumber, ""},
	{"VRD010",    "VRD10",    IcaoFlightNumber, "VRD"}, // Check zeroes get stripped
	{"SKW750R",   "SKW750",   IcaoFlightNumber, "SKW"}, // Check suffix get stripped
	{"SWA948  ",  "SWA948",   IcaoFlightNumber, "SWA"}, // ADS-B padding
}

func TestParseCallsign(t *testing.T) {
	for _,test := range callsignTests {
		cs := ParseCallsign(test.Raw)
		if cs.CallsignType != test.CallsignType {
			t.Errorf("'%s' - expected type %v, got %v", test.Raw, test.CallsignType, cs.CallsignType)
		}
		if cs.String() != test.Normalized {
			t.Errorf("'%s' - expected string %q, got %q", test.Raw, test.Normalized, cs.String())
		}
		if cs.IcaoPrefix != test.Carrier {
			t.Errorf("'%s' - expected carrier %q, got %q", test.Raw, test.Carrier, cs.IcaoPrefix)
		}
	}
}

func TestMaybeAddPrefix(t *testing.T) {
	cs := ParseCallsign("4517")
	cs.MaybeAddPrefix("SWA")
	if cs.String() != "SWA4517" {
		t.Errorf("expected SWA4517, got %q", cs.String())
	}
	if !CallsignStringsEqual("SWA0451", "SWA451") {
		t.Errorf("expected zero-padded callsigns to compare equal")
	}
}
