// Package bayesnet answers exact conditional probability queries over
// discrete Bayesian networks.
//
// A Bayes instance wraps one network and three engines: brute-force
// enumeration (algorithm 1) and variable elimination with alphabetical
// (algorithm 2) or size-first (algorithm 3) elimination order. Every answer
// reports how many additions and multiplications it took, so the algorithms
// can be compared on the same query.
//
//	net, _ := config.LoadNetworkFile("alarm.xml")
//	b, _ := bayesnet.New(bayesnet.Options{Network: net})
//	q, _ := query.Parse("P(B=T|J=T,M=T)")
//	res, _ := b.Answer(bayesnet.Request{Query: q, Algorithm: inference.HeuristicElimination})
//	fmt.Println(res) // 0.28417,7,16
package bayesnet
