// Package postgres implements storage.JobRepository on PostgreSQL with the
// pgvector extension.
//
// Candidate retrieval orders rows by cosine distance (`embedding <=> $1`) and
// reports similarity as 1 - distance. Every filter value travels as a bound
// parameter; the vector itself is bound as its text literal and cast to the
// vector type server-side.
package postgres
