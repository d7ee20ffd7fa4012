// Package view holds the in-memory working set of books and derives the two
// displayed partitions from it.
//
// Completed holds every Catalogué record in base order. Pending holds the rest,
// narrowed by the genre and statut filters and optionally re-sorted by cote.
// Base order is entry date descending with undated records last and the EAN
// breaking ties.
package view
