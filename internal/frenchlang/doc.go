// Package frenchlang ranks releases on the French-tracker language
// hierarchy (MULTI > VFF/VFQ/VF2 > VOF > TRUEFRENCH > FRENCH > VOSTFR > VO)
// and applies the supersession rules French trackers use during dupe
// checking: an upload with French audio drops inferior subtitle-only
// candidates outright, while an upload without French audio keeps superior
// French candidates flagged for the exclusion pipeline to weigh.
package frenchlang
