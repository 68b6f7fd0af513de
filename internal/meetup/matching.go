package meetup

// ComputeMatch decides whether the ping's responders share a free
// window. Only positive answers that supplied an availability window
// contribute; a "yes" without a window is kept on the ping for display
// but is indistinguishable from "no" here. The overlap is the latest
// start and earliest end across contributing windows, which works
// unchanged for a single window.
//
// Recomputing over an unchanged response set reproduces the stored
// result exactly.
func ComputeMatch(p *Ping) MatchResults {
	var contributing []Response
	for _, r := range p.Responses() {
		if r.Answer && r.Availability != nil {
			contributing = append(contributing, r)
		}
	}

	if len(contributing) == 0 {
		return MatchResults{PingID: p.ID, HasMatch: false}
	}

	start := contributing[0].Availability.Earliest
	end := contributing[0].Availability.Latest
	for _, r := range contributing[1:] {
		if r.Availability.Earliest.After(start) {
			start = r.Availability.Earliest
		}
		if r.Availability.Latest.Before(end) {
			end = r.Availability.Latest
		}
	}

	if !start.Before(end) {
		return MatchResults{PingID: p.ID, HasMatch: false}
	}

	return MatchResults{
		PingID: p.ID,
		Overlap: &TimeOverlap{
			Start:         start,
			End:           end,
			AttendeeCount: len(contributing),
		},
		HasMatch: true,
	}
}
