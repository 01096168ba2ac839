// Package steam is the HTTP client for the Steam listing, appdetails, and
// global achievement percentage endpoints, with tolerant decoding for the
// loosely typed fields those endpoints serve.
package steam
