package model

import "fmt"

type Round string

const (
	RoundHR        Round = "HR"
	RoundTechnical Round = "TECHNICAL"
	RoundSituation Round = "SITUATION"
)

// Rounds lists every round in the order they are visited.
var Rounds = []Round{RoundHR, RoundTechnical, RoundSituation}

func (r Round) Valid() bool {
	return r.index() >= 0
}

// Next returns the round that follows r; ok is false after SITUATION.
func (r Round) Next() (next Round, ok bool) {
	i := r.index()
	if i < 0 || i+1 >= len(Rounds) {
		return "", false
	}
	return Rounds[i+1], true
}

// Number is the 1-based position of the round.
func (r Round) Number() int {
	return r.index() + 1
}

func (r Round) index() int {
	for i, v := range Rounds {
		if v == r {
			return i
		}
	}
	return -1
}

func ParseRound(s string) (Round, error) {
	r := Round(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown round %q", s)
	}
	return r, nil
}
