// Package clientip resolves the originating client address of an HTTP
// request.
//
// Proxy headers are consulted in the order given, and the first header
// holding a valid address wins. X-Forwarded-For style lists are scanned left
// to right. When no header yields an address, the TCP peer in RemoteAddr is
// used.
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware("X-Forwarded-For", "X-Real-IP"))
//
// Downstream handlers read the resolved address with FromContext. Only list
// headers that a trusted proxy in front of the service overwrites; a client
// can forge any header that reaches the service unchanged.
package clientip
