// Package wordrank builds the word lists of a tile word game from a corpus of
// public-domain books.
//
// # Quick Start
//
//	p := wordrank.New()
//	res, err := p.Run(ctx, wordrank.DefaultPaths())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d generation words, %d dictionary words\n", len(res.Generation), len(res.Full))
//
// # Stages
//
// BuildTally counts normalized words over every book of the corpus directory
// that the persisted tally has not seen yet, checkpointing after each book, so
// an interrupted run resumes without double counting.
//
// BuildDictionary ranks the base word list by corpus frequency, keeps the top
// quarter minus excluded and short words as the generation list, and writes
// the sorted union of base and deletions lists as the full dictionary.
//
// # Concurrency
//
// A Pipeline runs sequentially and assumes it is the only writer of the state
// file.
package wordrank
