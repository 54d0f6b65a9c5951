// Package study builds study batches and progress summaries from review
// records. Everything here is pure: stores supply the candidates and the
// functions only filter, order and count them.
package study
