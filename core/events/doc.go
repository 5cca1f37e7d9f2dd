// Package events is the catalogue of application events published on the bus.
//
// Available topics:
//   - UserLoggedOut: a user session ended
//   - ThemeChanged: the active theme switched
//   - LocaleChanged: the active locale switched
//
// A logout can also be fired as a LogoutEvent, which carries listeners of its
// own. NewEvent picks the right event value for a type.
package events
