// Package group manages repeated form sections: an ordered sequence of
// structurally identical records (one per specification, size, color or
// gallery image) that a form can append to, remove from, and edit field by
// field.
//
// Group is an immutable value and every operation returns a new Group, so the
// package doubles as a reducer (Reduce) that callers can drive from any event
// loop. Records are addressed by position, which is what a form renders, but
// each record also carries a synthetic ID assigned on append. The ID is what
// asynchronous work holds on to: Store.SetImage resolves the position to an ID
// when it is called and applies the finished preview by ID, so a removal that
// lands while the file is still being read cannot redirect the image onto a
// neighbouring record. The store also counts selections per record, so only
// the latest SetImage (or clear) on a record can take effect.
//
// Out-of-range positions are silent no-ops throughout: a stale index after a
// concurrent removal must not corrupt another record.
package group
