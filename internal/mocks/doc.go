// Package mocks provides hand-written test doubles for the store and auth
// interfaces. Each mock has function fields to override single methods and
// simple defaults (in-memory maps, fixed return values) for the common case.
//
//	users := mocks.NewMockUserStore(user)
//	jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
package mocks
