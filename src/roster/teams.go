package roster

// ResearchTeam is the built-in 20-member research roster. It is used when no
// roster.json file is found in the data directory. Dr. Helena Markov, at
// index 0, is the node's heartbeat emitter.
func ResearchTeam() *Roster {
	r, _ := NewRoster([]*Persona{
		{ID: "citizen6-mathematician-alpha", Name: "Dr. Helena Markov", Role: "Mathematician", Specialization: "Algebraic Topology and Network Science", Archetype: "mathematician"},
		{ID: "citizen6-chemister-alpha", Name: "Dr. Marcus Webb", Role: "Chemist", Specialization: "Physical Chemistry and Complex Systems", Archetype: "chemist"},
		{ID: "citizen6-physicist-alpha", Name: "Dr. Elena Voss", Role: "Physicist", Specialization: "Quantum Computing and Information Theory", Archetype: "physicist"},
		{ID: "citizen6-biologist-alpha", Name: "Dr. James Chen", Role: "Biologist", Specialization: "Computational Biology and Genomics", Archetype: "biologist"},
		{ID: "citizen6-computer-scientist-alpha", Name: "Dr. Sarah Kim", Role: "Computer Scientist", Specialization: "Distributed Systems and Cryptography", Archetype: "computer_scientist"},
		{ID: "citizen6-mathematician-beta", Name: "Dr. Alex Rivera", Role: "Mathematician", Specialization: "Number Theory and Cryptography", Archetype: "mathematician"},
		{ID: "citizen6-neuroscientist-alpha", Name: "Dr. Maria Santos", Role: "Neuroscientist", Specialization: "Computational Neuroscience", Archetype: "neuroscientist"},
		{ID: "citizen6-astronomer-alpha", Name: "Dr. Robert Singh", Role: "Astronomer", Specialization: "Astrophysics and Cosmology", Archetype: "astronomer"},
		{ID: "citizen6-geologist-alpha", Name: "Dr. Emily Foster", Role: "Geologist", Specialization: "Planetary Geology", Archetype: "geologist"},
		{ID: "citizen6-statistician-alpha", Name: "Dr. David Park", Role: "Statistician", Specialization: "Bayesian Statistics", Archetype: "statistician"},
		{ID: "citizen6-validator-1", Name: "Validator Six-One", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
		{ID: "citizen6-validator-2", Name: "Validator Six-Two", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
		{ID: "citizen6-validator-3", Name: "Validator Six-Three", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
		{ID: "citizen6-validator-4", Name: "Validator Six-Four", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
		{ID: "citizen6-validator-5", Name: "Validator Six-Five", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
		{ID: "citizen6-social-1", Name: "Social Six-One", Role: "Social", Specialization: "Network Engagement", Archetype: "social"},
		{ID: "citizen6-social-2", Name: "Social Six-Two", Role: "Social", Specialization: "Network Engagement", Archetype: "social"},
		{ID: "citizen6-social-3", Name: "Social Six-Three", Role: "Social", Specialization: "Network Engagement", Archetype: "social"},
		{ID: "citizen6-social-4", Name: "Social Six-Four", Role: "Social", Specialization: "Network Engagement", Archetype: "social"},
		{ID: "citizen6-social-5", Name: "Social Six-Five", Role: "Social", Specialization: "Network Engagement", Archetype: "social"},
	})
	return r
}
