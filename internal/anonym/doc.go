// package anonym defines the placeholder values written over personal data.
//
// Each entity kind (user, group, domain, space, application instance, node,
// publication) has a constructor expanding the configured template prefix and
// the entity's numeric id into deterministic display values. Encode derives
// the stable numeric identifier used when a backing store hands out opaque
// string identifiers.
package anonym
