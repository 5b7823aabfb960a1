package core

import (
	"strconv"
	"testing"
)

func populate(b *testing.B, users, channels int) *Registry {
	b.Helper()

	r := NewRegistry(nil)
	for i := range users {
		r.Register(UserID(i))
	}
	for c := range channels {
		title := "chan" + strconv.Itoa(c)
		if _, err := r.AddChannel(UserID(c%users), title, false); err != nil {
			b.Fatal(err)
		}
		for i := 0; i < users; i += 2 {
			_, _ = r.AddUser(UserID(i), title)
		}
	}
	return r
}

func benchmarkRelevant(b *testing.B, users, channels int) {
	r := populate(b, users, channels)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = r.Relevant(UserID(i % users))
	}
}

func benchmarkRegisterDeregister(b *testing.B, users, channels int) {
	r := populate(b, users, channels)
	id := UserID(users)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Register(id)
		_, _ = r.Join(id, "chan0")
		r.Deregister(id)
	}
}

func BenchmarkRelevant_10x5(b *testing.B)   { benchmarkRelevant(b, 10, 5) }
func BenchmarkRelevant_500x50(b *testing.B) { benchmarkRelevant(b, 500, 50) }
func BenchmarkChurn_10x5(b *testing.B)      { benchmarkRegisterDeregister(b, 10, 5) }
func BenchmarkChurn_500x50(b *testing.B)    { benchmarkRegisterDeregister(b, 500, 50) }
