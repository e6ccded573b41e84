package memory

import "mock-interview-service/internal/domain"

// DefaultQuestionSets is the built-in bank used when no database is configured.
func DefaultQuestionSets() map[string]domain.QuestionSet {
	return map[string]domain.QuestionSet{
		"easy": {
			Difficulty: "easy",
			Content: domain.Content{
				DSA: []domain.DSAQuestion{
					{
						ID:          "1",
						Title:       "Two Sum",
						Description: "Given an array of integers nums and an integer target, return the indices of the two numbers that add up to target.",
						Difficulty:  "easy",
						Example:     domain.TestCase{Input: "[2,7,11,15], 9", Output: "[0,1]"},
						TestCases: []domain.TestCase{
							{Input: "[2,7,11,15], 9", Output: "[0,1]"},
							{Input: "[3,2,4], 6", Output: "[1,2]"},
							{Input: "[3,3], 6", Output: "[0,1]"},
						},
						MaxTime: 900,
					},
					{
						ID:          "2",
						Title:       "Valid Parentheses",
						Description: "Given a string containing only the characters ()[]{}, determine whether the brackets are closed in the correct order.",
						Difficulty:  "easy",
						Example:     domain.TestCase{Input: "\"()[]{}\"", Output: "true"},
						TestCases: []domain.TestCase{
							{Input: "\"()\"", Output: "true"},
							{Input: "\"(]\"", Output: "false"},
							{Input: "\"{[]}\"", Output: "true"},
						},
						MaxTime: 900,
					},
				},
				Voice: []domain.VoiceQuestion{
					{ID: "1", Question: "What is the difference between an array and a linked list?", Answer: "Arrays store elements contiguously and give O(1) indexed access but costly inserts in the middle. Linked lists store nodes with pointers, giving O(1) inserts at a known node but O(n) access by index."},
					{ID: "2", Question: "What is a hash map and what is its average lookup cost?", Answer: "A hash map stores key-value pairs in buckets chosen by hashing the key. Average lookup, insert and delete are O(1); collisions are handled by chaining or open addressing."},
					{ID: "3", Question: "Explain what a stack is and give one use case.", Answer: "A stack is a last-in first-out collection with push and pop. It is used for function call frames, undo history and matching brackets."},
				},
			},
		},
		"medium": {
			Difficulty: "medium",
			Content: domain.Content{
				DSA: []domain.DSAQuestion{
					{
						ID:          "1",
						Title:       "Longest Substring Without Repeating Characters",
						Description: "Given a string s, find the length of the longest substring without repeating characters.",
						Difficulty:  "medium",
						Example:     domain.TestCase{Input: "\"abcabcbb\"", Output: "3"},
						TestCases: []domain.TestCase{
							{Input: "\"abcabcbb\"", Output: "3"},
							{Input: "\"bbbbb\"", Output: "1"},
							{Input: "\"pwwkew\"", Output: "3"},
						},
						MaxTime: 1200,
					},
					{
						ID:          "2",
						Title:       "Merge Intervals",
						Description: "Given an array of intervals, merge all overlapping intervals and return the non-overlapping result.",
						Difficulty:  "medium",
						Example:     domain.TestCase{Input: "[[1,3],[2,6],[8,10]]", Output: "[[1,6],[8,10]]"},
						TestCases: []domain.TestCase{
							{Input: "[[1,3],[2,6],[8,10]]", Output: "[[1,6],[8,10]]"},
							{Input: "[[1,4],[4,5]]", Output: "[[1,5]]"},
						},
						MaxTime: 1200,
					},
				},
				Voice: []domain.VoiceQuestion{
					{ID: "1", Question: "How does a binary search tree differ from a heap?", Answer: "A BST keeps left children smaller and right children larger, supporting ordered search in O(log n) when balanced. A heap only guarantees the parent is ordered relative to its children, giving O(1) access to the min or max."},
					{ID: "2", Question: "What is the difference between a process and a thread?", Answer: "A process has its own address space and resources. Threads live inside a process and share its memory, so they are cheaper to create but need synchronization."},
					{ID: "3", Question: "Explain breadth-first versus depth-first search.", Answer: "BFS explores level by level with a queue and finds shortest paths in unweighted graphs. DFS goes deep first using a stack or recursion and is useful for cycle detection and topological sort."},
				},
			},
		},
		"hard": {
			Difficulty: "hard",
			Content: domain.Content{
				DSA: []domain.DSAQuestion{
					{
						ID:          "1",
						Title:       "Median of Two Sorted Arrays",
						Description: "Given two sorted arrays nums1 and nums2, return the median of the two arrays in O(log(m+n)) time.",
						Difficulty:  "hard",
						Example:     domain.TestCase{Input: "[1,3], [2]", Output: "2.0"},
						TestCases: []domain.TestCase{
							{Input: "[1,3], [2]", Output: "2.0"},
							{Input: "[1,2], [3,4]", Output: "2.5"},
						},
						MaxTime: 1800,
					},
					{
						ID:          "2",
						Title:       "Trapping Rain Water",
						Description: "Given n non-negative integers representing an elevation map, compute how much water it can trap after raining.",
						Difficulty:  "hard",
						Example:     domain.TestCase{Input: "[0,1,0,2,1,0,1,3,2,1,2,1]", Output: "6"},
						TestCases: []domain.TestCase{
							{Input: "[0,1,0,2,1,0,1,3,2,1,2,1]", Output: "6"},
							{Input: "[4,2,0,3,2,5]", Output: "9"},
						},
						MaxTime: 1800,
					},
				},
				Voice: []domain.VoiceQuestion{
					{ID: "1", Question: "How would you design a rate limiter for an API?", Answer: "Use a token bucket or sliding window per client key, stored in a fast shared store such as Redis, with atomic increments and expiry. Return 429 when the budget is exhausted."},
					{ID: "2", Question: "Explain the CAP theorem.", Answer: "A distributed system facing a network partition must choose between consistency and availability. Without partitions both can be provided."},
					{ID: "3", Question: "What is dynamic programming and when does it apply?", Answer: "Dynamic programming solves problems with overlapping subproblems and optimal substructure by caching sub-results, either top-down with memoization or bottom-up with tables."},
				},
			},
		},
	}
}
