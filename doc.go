// Package traffic holds position reports for aircraft, and the operations for cutting them into
// flights and working with those flights: time filters, aggregation, resampling, projection,
// simplification, polygon tests and GeoJSON export. No network or storage imports; see package
// fetch for getting the bytes.
//
//   tr,err := traffic.TrafficFromBytes(data)
//   it := tr.Iterate(traffic.DefaultSplitThreshold)
//   for it.Iterate() {
//     f := it.Flight()
//   }
//   if it.Err() != nil { ... }
package traffic
