package model

import "time"

// Experience is a bookable tour or activity offered through the
// platform.  Experiences are reference data from the booking core's
// perspective: they are created out of band and never mutated here.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display name of the experience.
//  Image       – reference (URL or asset key) to the cover image.
//  Description – short summary shown in listings.
//  Price       – price per person in whole currency units.
//  Location    – where the experience takes place.
//  GuideName   – optional name of the guide running it.
//  About       – optional long-form description.
//  CreatedAt   – creation timestamp.
type Experience struct {
    ID          uint64    // experiences.id
    Title       string    // experiences.title
    Image       string    // experiences.image
    Description string    // experiences.description
    Price       int64     // experiences.price
    Location    string    // experiences.location
    GuideName   *string   // experiences.guide_name (nullable)
    About       *string   // experiences.about (nullable)
    CreatedAt   time.Time // experiences.created_at
}
