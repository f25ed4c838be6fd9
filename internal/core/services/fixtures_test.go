package services

import "strings"

const po3040 = "ISA*00*          *00*          *01*0011223456     *01*999999999      *950120*0147*U*00300*000000005*0*P*^~" +
	"GS*PO*0011223456*999999999*950120*0147*5*X*003040~" +
	"ST*850*000000001~" +
	"BEG*00*SA*95018017***950118~" +
	"N1*SE*UNIVERSAL WIDGETS~" +
	"N3*375 PLYMOUTH PARK*SUITE 205~" +
	"N4*IRVING*TX*75061~" +
	"N1*ST*JIT MANUFACTURING~" +
	"N3*BUILDING 3B*2001 ENTERPRISE PARK~" +
	"N4*JUAREZ*CH**MEX~" +
	"N1*AK*JIT MANUFACTURING~" +
	"N3*400 INDUSTRIAL PARKWAY~" +
	"N4*INDUSTRIAL AIRPORT*KS*66030~" +
	"N1*BT*JIT MANUFACTURING~" +
	"N2*ACCOUNTS  PAYABLE DEPARTMENT~" +
	"N3*400 INDUSTRIAL PARKWAY~" +
	"N4*INDUSTRIAL AIRPORT*KS*66030~" +
	"PO1*001*4*EA*330*TE*IN*525*VN*X357-W2~" +
	"PID*F****HIGH PERFORMANCE WIDGET~" +
	"SCH*4*EA****002*950322~" +
	"CTT*1*1~" +
	"SE*20*000000001~" +
	"GE*1*5~" +
	"IEA*1*000000005~"

const iatb = "UNA:+.? '" +
	"UNB+IATB:1+6XPPC:ZZ+LHPPC:ZZ+940101:0950+1'" +
	"UNH+1+PAORES:93:1:IA'" +
	"MSG+1:45'" +
	"IFT+3+XYZCOMPANY AVAILABILITY'" +
	"ERC+A7V:1:AMD'" +
	"IFT+3+NO MORE FLIGHTS'" +
	"ODI'" +
	"TVL+240493:1000::1220+FRA+JFK+DL+400+C'" +
	"PDI++C:3+Y::3+F::1'" +
	"APD+74C:0:::6++++++6X'" +
	"TVL+240493:1740::2030+JFK+MIA+DL+081+C'" +
	"PDI++C:4'" +
	"APD+EM2:0:1630::6+++++++DA'" +
	"UNT+13+1'" +
	"UNZ+1+1'"

const unbOnly = "UNB+UNOC:3+sender:id+receiver:id+date:time+ref'UNH+1+ORDERS:D:96A:UN'UNT+2+1'UNZ+1+ref'"

// splitKeep splits doc after every terminator, keeping it on each segment.
func splitKeep(doc string, terminator byte) []string {
	var out []string
	for _, part := range strings.SplitAfter(doc, string(terminator)) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hardWrap inserts CRLF after every width bytes.
func hardWrap(doc string, width int) string {
	var b strings.Builder
	for len(doc) > width {
		b.WriteString(doc[:width])
		b.WriteString("\r\n")
		doc = doc[width:]
	}
	b.WriteString(doc)
	return b.String()
}

// diagRecorder collects diagnostics for assertions.
type diagRecorder struct {
	lines []string
}

func (r *diagRecorder) record(msg string) {
	r.lines = append(r.lines, msg)
}
