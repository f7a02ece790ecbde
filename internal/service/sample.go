package service

import (
	"time"

	"jobverse/internal/domain"
)

// SampleEntries is the demo set written when a run finds no relevant jobs.
func SampleEntries(now time.Time, source string) []domain.FeedEntry {
	published := now.UTC().Format(time.RFC3339)

	return []domain.FeedEntry{
		{
			Title:       "Senior Full Stack Developer - Python & React",
			Link:        "https://remoteok.io/remote-jobs/123456",
			Description: "We are looking for a Senior Full Stack Developer with expertise in Python and React. Join our remote team and work on cutting-edge machine learning projects. Experience with Django, PostgreSQL, and AWS required. Competitive salary ₹800000-1200000 per year.",
			PublishedAt: published,
			GUID:        "sample-job-1",
			Source:      source,
		},
		{
			Title:       "AI/ML Engineer - Deep Learning Specialist",
			Link:        "https://remoteok.io/remote-jobs/789012",
			Description: "Exciting opportunity for an AI/ML Engineer specializing in deep learning and LLM development. Work with cutting-edge technologies including TensorFlow, PyTorch, and ChatGPT integration. Remote position with flexible hours. Tech startup environment.",
			PublishedAt: published,
			GUID:        "sample-job-2",
			Source:      source,
		},
		{
			Title:       "Backend Developer - Django & Python",
			Link:        "https://remoteok.io/remote-jobs/345678",
			Description: "Join our backend team as a Python Django developer. Build scalable APIs and microservices. Experience with Docker, Kubernetes, and cloud platforms preferred. Full-time remote position with competitive benefits.",
			PublishedAt: published,
			GUID:        "sample-job-3",
			Source:      source,
		},
		{
			Title:       "React Frontend Developer - Gen AI Projects",
			Link:        "https://remoteok.io/remote-jobs/901234",
			Description: "Frontend developer needed for Gen AI and machine learning projects. Strong React skills required, experience with TypeScript and modern frontend tools. Work on innovative AI-powered applications. Remote-first company culture.",
			PublishedAt: published,
			GUID:        "sample-job-4",
			Source:      source,
		},
		{
			Title:       "Software Engineer - Full Stack Python/React",
			Link:        "https://remoteok.io/remote-jobs/567890",
			Description: "Software engineer position focusing on full stack development with Python backend and React frontend. Work on machine learning pipelines and data visualization tools. Tech-forward company with great benefits and stipend support.",
			PublishedAt: published,
			GUID:        "sample-job-5",
			Source:      source,
		},
	}
}
