package content

// Default returns the portfolio content shipped with the site.
func Default() Site {
	return Site{
		Profile: Profile{
			Name:    "Soumyajeet Das",
			Role:    "Full Stack Developer",
			Tagline: "I build web apps that feel alive.",
			About: "Developer focused on React and Node.js, with a soft spot for " +
				"interactive 3D on the web and real-time applications.",
		},
		Sections: append([]Section(nil), Order...),
		Projects: []Project{
			{
				ID:          1,
				Title:       "Fake News Detector",
				Description: "AI-powered web app to identify and flag fake news articles.",
				Tech:        []string{"React", "Google Gemini AI", "Tailwind"},
				Link:        "https://fakenewsdetector-0nby.onrender.com/",
				GitHub:      "https://github.com/Soumyajeet916/FakeNewsDetector",
				Image:       "https://picsum.photos/600/400?random=1",
			},
			{
				ID:          2,
				Title:       "Talkify",
				Description: "A Chat application with real-time messaging and media sharing features.",
				Tech:        []string{"React", "Node.js", "MongoDB", "Socket.io", "Cloudinary", "Express", "Tailwind", "JWT"},
				Link:        "https://talkify-hc2m.onrender.com/",
				GitHub:      "https://github.com/Soumyajeet916/Talkify",
				Image:       "https://picsum.photos/600/400?random=2",
			},
		},
		Skills: []Skill{
			{Name: "React / Next.js", Category: Frontend},
			{Name: "Tailwind CSS", Category: Frontend},
			{Name: "Framer Motion", Category: Frontend},

			{Name: "Node.js", Category: Backend},
			{Name: "Express.js", Category: Backend},
			{Name: "JavaScript", Category: Backend},
			{Name: "TypeScript", Category: Backend},
			{Name: "Java", Category: Backend},
			{Name: "REST APIs", Category: Backend},
			{Name: "Authentication (JWT, OAuth, Clerk)", Category: Backend},

			{Name: "MongoDB / Mongoose", Category: Database},
			{Name: "SQL", Category: Database},

			{Name: "Git / GitHub", Category: Tools},
			{Name: "Vercel / Netlify Deployment", Category: Tools},
			{Name: "Postman", Category: Tools},

			{Name: "Problem Solving (DSA)", Category: Other},
		},
		Social: Social{
			GitHub:   "https://github.com/Soumyajeet916",
			LinkedIn: "https://www.linkedin.com/in/soumyajeet-das-08140b250/",
			Twitter:  "https://x.com/Soumyajeet19",
			Email:    "mailto:soumyajeetdas.sd@gmail.com",
			CV:       "https://drive.google.com/file/d/1MkBaRmCEJoVUllnKaQm32e5XTPZ3C54s/view?usp=sharing",
		},
	}
}
