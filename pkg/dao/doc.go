// Package dao defines the data access component contract and the PostgreSQL
// plumbing DAOs run on.
//
// DAOs are ordinary components: they are registered under a namespace with
// the "Dao" suffix and resolved by logical name through the component maker.
// A [Provider] makes a fresh DAO and attaches a [Querier] (pool or
// transaction) to it.
//
//	type UserDao struct{ dao.Base }
//
//	registry.MustRegister(loc, "UserDao", resolver.Func(func() *UserDao { return &UserDao{} }))
//
//	pool, err := dao.Connect(ctx, cfg)
//	provider := dao.NewProvider(components.Daos, pool)
//	users, err := dao.As[*UserDao](ctx, provider, "User")
//
// [Connect] retries with linear backoff, [Healthcheck] plugs into the health
// package and [WithTx] wraps a function in a transaction.
package dao
