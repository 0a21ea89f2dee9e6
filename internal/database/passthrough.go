package database

// Passthrough is the empty-query strategy (spec §4.4): every entry matches,
// so there is nothing to test and no hit set to build. collectHits treats a
// nil hits slice as "every id matched", which is exactly Passthrough's
// result — see database/search/filters/passthrough.rs, whose ordered and
// unordered implementations are equally trivial.
